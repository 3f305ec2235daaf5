package scenario_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mash-protocol/subscriber/pkg/scenario"
)

// TestParseScenarioBasic tests basic YAML scenario parsing.
func TestParseScenarioBasic(t *testing.T) {
	yaml := `
id: SC-TEST-001
name: Basic Scenario
description: A simple scenario
subscribers: [a, b]
steps:
  - action: add
    subscriber: a
  - action: notify
    value: hello
    expect:
      delivered: [a]
      size: 1
`
	sc, err := scenario.ParseScenario([]byte(yaml))
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	if sc.ID != "SC-TEST-001" {
		t.Errorf("ID mismatch: expected SC-TEST-001, got %s", sc.ID)
	}
	if sc.Name != "Basic Scenario" {
		t.Errorf("Name mismatch: expected 'Basic Scenario', got %s", sc.Name)
	}
	if len(sc.Subscribers) != 2 {
		t.Errorf("Expected 2 subscribers, got %d", len(sc.Subscribers))
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(sc.Steps))
	}

	notify := sc.Steps[1]
	if notify.Action != scenario.ActionNotify {
		t.Errorf("Step action mismatch: expected notify, got %s", notify.Action)
	}
	if notify.Value != "hello" {
		t.Errorf("Step value mismatch: expected hello, got %s", notify.Value)
	}
	if notify.Expect == nil || notify.Expect.Size == nil || *notify.Expect.Size != 1 {
		t.Fatalf("Expected size expectation of 1")
	}
	if notify.Expect.Found != nil {
		t.Errorf("Found should be unset on notify")
	}
}

// TestParseScenarioEmptyDelivered checks that an empty list is distinct from no check.
func TestParseScenarioEmptyDelivered(t *testing.T) {
	yaml := `
id: SC-EMPTY-001
steps:
  - action: notify
    expect:
      delivered: []
  - action: notify
`
	sc, err := scenario.ParseScenario([]byte(yaml))
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	if sc.Steps[0].Expect == nil || sc.Steps[0].Expect.Delivered == nil {
		t.Errorf("Expected empty delivered list to be checked")
	}
	if sc.Steps[1].Expect != nil {
		t.Errorf("Expected no expectations on second step")
	}
}

func TestParseScenarioValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing id",
			yaml: "steps:\n  - action: len\n",
			want: "scenario ID is required",
		},
		{
			name: "no steps",
			yaml: "id: X\n",
			want: "at least one step",
		},
		{
			name: "duplicate subscriber",
			yaml: "id: X\nsubscribers: [a, a]\nsteps:\n  - action: len\n",
			want: `subscriber "a" declared twice`,
		},
		{
			name: "unknown action",
			yaml: "id: X\nsteps:\n  - action: remove\n",
			want: `step 1: unknown action "remove"`,
		},
		{
			name: "missing subscriber",
			yaml: "id: X\nsubscribers: [a]\nsteps:\n  - action: add\n",
			want: "step 1: add requires a subscriber",
		},
		{
			name: "undeclared subscriber",
			yaml: "id: X\nsubscribers: [a]\nsteps:\n  - action: len\n  - action: has\n    subscriber: b\n",
			want: `step 2: undeclared subscriber "b"`,
		},
		{
			name: "found on notify",
			yaml: "id: X\nsteps:\n  - action: notify\n    expect:\n      found: true\n",
			want: "found can only be checked on has",
		},
		{
			name: "delivered on len",
			yaml: "id: X\nsteps:\n  - action: len\n    expect:\n      delivered: [a]\n",
			want: "delivered can only be checked on notify",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.ParseScenario([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseScenarioInvalidYAML(t *testing.T) {
	_, err := scenario.ParseScenario([]byte("id: [unterminated"))
	if err == nil {
		t.Fatal("Expected parse error")
	}

	var le *scenario.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Expected *LoadError, got %T", err)
	}
	if le.Cause == nil {
		t.Error("Expected underlying YAML error")
	}
}

func TestLoadScenarioSetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("name: no id\nsteps:\n  - action: len\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := scenario.LoadScenario(path)
	var le *scenario.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Expected *LoadError, got %v", err)
	}
	if le.File != path {
		t.Errorf("File mismatch: expected %s, got %s", path, le.File)
	}
	if !strings.HasPrefix(err.Error(), path+": ") {
		t.Errorf("Error should start with the file path: %v", err)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := scenario.LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

// TestLoadDirectory tests loading every scenario file in sorted order.
func TestLoadDirectory(t *testing.T) {
	scenarios, err := scenario.LoadDirectory("testdata")
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}

	want := []string{"SC-ORDER-001", "SC-PRUNE-001", "SC-DUP-001"}
	if len(scenarios) != len(want) {
		t.Fatalf("Expected %d scenarios, got %d", len(want), len(scenarios))
	}
	for i, sc := range scenarios {
		if sc.ID != want[i] {
			t.Errorf("Scenario %d: expected %s, got %s", i, want[i], sc.ID)
		}
	}
}

func TestLoadFileOrDirectory(t *testing.T) {
	one, err := scenario.Load(filepath.Join("testdata", "02-prune.yaml"))
	if err != nil {
		t.Fatalf("Failed to load file: %v", err)
	}
	if len(one) != 1 || one[0].ID != "SC-PRUNE-001" {
		t.Errorf("Unexpected scenarios: %+v", one)
	}

	all, err := scenario.Load("testdata")
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 scenarios, got %d", len(all))
	}

	if _, err := scenario.Load(filepath.Join("testdata", "nope")); err == nil {
		t.Error("Expected error for missing path")
	}
}
