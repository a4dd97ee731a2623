// Command chordctl is an interactive shell over an in-process simulated
// Chord ring. It is a demonstration entry point, not a network service: the
// ring it drives lives entirely inside this one process.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"go.opentelemetry.io/otel/trace"

	"ChordSim/internal/config"
	"ChordSim/internal/logger"
	zapadapter "ChordSim/internal/logger/zap"
	"ChordSim/internal/ring"
	"ChordSim/internal/scenario"
	"ChordSim/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	bitsFlag := flag.Int("bits", 8, "Identifier space width in bits, if no -config is given")
	scenarioPath := flag.String("scenario", "", "Path to a scenario file to replay at startup")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := defaultConfig(*bitsFlag)
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}
	cfg.ApplyEnvOverrides()
	if *scenarioPath != "" {
		cfg.Scenario = *scenarioPath
	}
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	lgr, err := buildLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	cfg.LogConfig(lgr)

	tracer, shutdown, err := telemetry.InitTracer(cfg.Telemetry, "chordctl")
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	r, err := ring.New(cfg.Ring.Bits, ring.WithLogger(lgr))
	if err != nil {
		log.Fatalf("failed to build ring: %v", err)
	}

	if cfg.Scenario != "" {
		s, err := scenario.Load(cfg.Scenario)
		if err != nil {
			log.Fatalf("failed to load scenario %s: %v", cfg.Scenario, err)
		}
		if _, err := scenario.Run(r, s, lgr); err != nil {
			log.Fatalf("scenario replay failed: %v", err)
		}
		fmt.Printf("Replayed scenario %s (%d steps)\n", cfg.Scenario, len(s.Steps))
	}

	runShell(r, tracer)
}

func defaultConfig(bits int) *config.Config {
	return &config.Config{
		Ring: config.RingConfig{Bits: bits},
		Logger: config.LoggerConfig{
			Active:   true,
			Level:    "info",
			Encoding: "console",
			Mode:     "stdout",
		},
		Telemetry: config.TelemetryConfig{
			Tracing: config.TracingConfig{Enabled: false, Exporter: "none"},
		},
	}
}

func buildLogger(cfg config.LoggerConfig) (logger.Logger, error) {
	if !cfg.Active {
		return &logger.NopLogger{}, nil
	}
	zl, err := zapadapter.New(cfg)
	if err != nil {
		return nil, err
	}
	return zapadapter.NewZapAdapter(zl), nil
}

func runShell(r *ring.Ring, tracer trace.Tracer) {
	fmt.Printf("Chord ring simulator. %d-bit identifier space.\n", r.Space().Bits)
	fmt.Println("Available commands: join/leave/insert/lookup/delete/fingers/nodes/trace/exit")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("chord> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("Aborted")
				continue
			}
			break
		}
		line.AppendHistory(input)

		args := strings.Fields(strings.TrimSpace(input))
		if len(args) == 0 {
			continue
		}
		cmd := args[0]

		switch cmd {
		case "join":
			runJoin(r, args)
		case "leave":
			runLeave(r, args)
		case "insert":
			runInsert(r, args)
		case "lookup":
			runLookup(r, args)
		case "delete":
			runDelete(r, args)
		case "fingers":
			runFingers(r, args)
		case "nodes":
			runNodes(r)
		case "trace":
			runTrace(r, tracer, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}

func parseID(s string) (int, error) { return strconv.Atoi(s) }

func runJoin(r *ring.Ring, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: join <id>")
		return
	}
	id, err := parseID(args[1])
	if err != nil {
		fmt.Printf("invalid id: %v\n", err)
		return
	}
	if _, err := r.Join(id); err != nil {
		fmt.Printf("join failed: %v\n", err)
		return
	}
	fmt.Printf("node %d joined (ring size=%d)\n", id, r.Size())
}

func runLeave(r *ring.Ring, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: leave <id>")
		return
	}
	id, err := parseID(args[1])
	if err != nil {
		fmt.Printf("invalid id: %v\n", err)
		return
	}
	if err := r.Leave(id); err != nil {
		fmt.Printf("leave failed: %v\n", err)
		return
	}
	fmt.Printf("node %d left (ring size=%d)\n", id, r.Size())
}

func runInsert(r *ring.Ring, args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: insert <key> <value>")
		return
	}
	if err := r.Insert(args[1], args[2]); err != nil {
		fmt.Printf("insert failed: %v\n", err)
		return
	}
	fmt.Printf("inserted key=%s value=%s\n", args[1], args[2])
}

func runLookup(r *ring.Ring, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: lookup <key>")
		return
	}
	value, found, err := r.Lookup(args[1])
	if err != nil {
		fmt.Printf("lookup failed: %v\n", err)
		return
	}
	if !found {
		fmt.Printf("key not found: %s\n", args[1])
		return
	}
	fmt.Printf("key=%s value=%s\n", args[1], value)
}

func runDelete(r *ring.Ring, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: delete <key>")
		return
	}
	if err := r.Delete(args[1]); err != nil {
		fmt.Printf("delete failed: %v\n", err)
		return
	}
	fmt.Printf("deleted key=%s\n", args[1])
}

func runFingers(r *ring.Ring, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: fingers <id>")
		return
	}
	id, err := parseID(args[1])
	if err != nil {
		fmt.Printf("invalid id: %v\n", err)
		return
	}
	n, ok := r.Node(id)
	if !ok {
		fmt.Printf("no such node: %d\n", id)
		return
	}
	fmt.Printf("node %s: successor=%s predecessor=%s\n", n.ID(), n.Successor().ID(), n.Predecessor().ID())
	for i, f := range n.Fingers() {
		fmt.Printf("  [%d] %s\n", i, f.ID())
	}
}

func runNodes(r *ring.Ring) {
	nodes := r.NodesInOrder()
	fmt.Printf("%d live nodes:\n", len(nodes))
	for _, n := range nodes {
		fmt.Printf("  %s (successor=%s, predecessor=%s, keys=%d)\n",
			n.ID(), n.Successor().ID(), n.Predecessor().ID(), len(n.Data()))
	}
}

func runTrace(r *ring.Ring, tracer trace.Tracer, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: trace <key>")
		return
	}
	nodes := r.NodesInOrder()
	if len(nodes) == 0 {
		fmt.Println("ring is empty")
		return
	}
	target := r.Space().HashID(args[1])
	owner := telemetry.TraceLookup(context.Background(), tracer, nodes[0], target)
	fmt.Printf("lookup target=%s resolved to node=%s\n", target, owner.ID())
}
