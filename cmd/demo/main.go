// Command demo runs a YAML-described sequence of mvreg operations across a
// handful of in-process replicas and prints the resulting register values.
// It performs no network I/O: "exchange" steps are direct in-memory
// Apply/PendingOps hand-offs between Replica values in the same process.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/kywong-dev/mvregister/internal/xlog"
)

func main() {
	path := flag.String("scenario", "", "path to a scenario YAML file")
	nodeId := flag.String("node-id", "demo", "tag attached to log lines")
	flag.Parse()

	xlog.InitDefault(*nodeId)

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: demo -scenario <file.yaml>")
		os.Exit(2)
	}

	scenario, err := LoadScenario(*path)
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}

	replicas, err := scenario.Run(func(msg string, kv ...any) {
		slog.Debug(msg, kv...)
	})
	if err != nil {
		log.Fatalf("run scenario: %v", err)
	}

	for name, r := range replicas {
		fmt.Printf("%s: get() = %v\n", name, r.Get())
	}
}
