package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ChordSim/internal/ring"
)

// TraceLookup re-exposes ring.Node.FindSuccessorHops as a traced operation:
// one parent span for the whole lookup, one child span per hop the
// recursive search forwarded through, each carrying the forwarding node's
// id and the id it forwarded to. The ring package itself never imports
// OpenTelemetry — tracing wraps the core from the outside, so the
// single-threaded, synchronous lookup protocol stays free of tracer
// plumbing.
func TraceLookup(ctx context.Context, tracer trace.Tracer, start *ring.Node, target ring.ID) *ring.Node {
	ctx, span := tracer.Start(ctx, "chord.lookup")
	defer span.End()
	span.SetAttributes(idAttribute("chord.lookup.target", target.String()))

	owner, hops := start.FindSuccessorHops(target)
	for i, hop := range hops {
		_, hopSpan := tracer.Start(ctx, "chord.lookup.hop")
		hopSpan.SetAttributes(
			attribute.Int("chord.lookup.hop_index", i),
			idAttribute("chord.lookup.hop_from", hop.From.ID().String()),
			idAttribute("chord.lookup.hop_to", hop.To.ID().String()),
			attribute.Bool("chord.lookup.terminal", hop.To == owner || hop.From == hop.To),
		)
		hopSpan.End()
	}

	span.SetAttributes(idAttribute("chord.lookup.owner", owner.ID().String()))
	return owner
}
