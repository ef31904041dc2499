package main

import (
	"fmt"
	"os"

	"github.com/kywong-dev/mvregister/mvreg"
	"gopkg.in/yaml.v3"
)

// Scenario describes a sequence of in-process replica operations to run,
// loaded from a YAML file. Running a scenario never touches the network:
// an "exchange" step is a direct in-memory hand-off of one replica's
// PendingOps to another, never a wire call.
type Scenario struct {
	Actors []ActorSpec `yaml:"actors"`
	Steps  []Step      `yaml:"steps"`
}

// ActorSpec names a participant. An empty Id gets a fresh mvreg.NewActorID.
type ActorSpec struct {
	Id       string `yaml:"id"`
	UseCache bool   `yaml:"use_cache"`
}

// Step is one action in the scenario: set/delete/undo/redo/exchange/dump.
type Step struct {
	Actor string `yaml:"actor"`
	Op    string `yaml:"op"`
	Value string `yaml:"value,omitempty"`
	With  string `yaml:"with,omitempty"` // for "exchange": the other actor's name
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

// Run executes the scenario against a fresh set of in-process replicas and
// returns them keyed by actor name, for inspection by the caller.
func (s *Scenario) Run(log func(string, ...any)) (map[string]*mvreg.Replica[string], error) {
	replicas := make(map[string]*mvreg.Replica[string], len(s.Actors))
	for _, a := range s.Actors {
		id := mvreg.ActorId(a.Id)
		if id == "" {
			id = mvreg.NewActorID()
		}
		replicas[a.Id] = mvreg.Create[string](id, a.UseCache)
	}

	for i, step := range s.Steps {
		r, ok := replicas[step.Actor]
		if !ok {
			return nil, fmt.Errorf("step %d: unknown actor %q", i, step.Actor)
		}

		switch step.Op {
		case "set":
			r.Set(step.Value)
			log("set", "actor", step.Actor, "value", step.Value)
		case "delete":
			r.Delete()
			log("delete", "actor", step.Actor)
		case "undo":
			r.Undo()
			log("undo", "actor", step.Actor)
		case "redo":
			r.Redo()
			log("redo", "actor", step.Actor)
		case "exchange":
			other, ok := replicas[step.With]
			if !ok {
				return nil, fmt.Errorf("step %d: unknown exchange partner %q", i, step.With)
			}
			r.Apply(other.PendingOps())
			other.Apply(r.PendingOps())
			log("exchange", "a", step.Actor, "b", step.With)
		case "dump":
			fmt.Println(r.Dump())
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}

	return replicas, nil
}
