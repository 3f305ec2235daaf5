package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseScenario parses and validates a scenario from YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if err := Validate(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that a scenario is well formed.
func Validate(sc *Scenario) error {
	if sc.ID == "" {
		return &LoadError{Message: "scenario ID is required"}
	}
	if len(sc.Steps) == 0 {
		return &LoadError{Message: "scenario must have at least one step"}
	}

	declared := make(map[string]bool, len(sc.Subscribers))
	for _, name := range sc.Subscribers {
		if name == "" {
			return &LoadError{Message: "subscriber name must not be empty"}
		}
		if declared[name] {
			return &LoadError{Message: fmt.Sprintf("subscriber %q declared twice", name)}
		}
		declared[name] = true
	}

	for i, step := range sc.Steps {
		if !step.Action.valid() {
			return &LoadError{Message: fmt.Sprintf("step %d: unknown action %q", i+1, step.Action)}
		}
		if step.Action.needsSubscriber() {
			if step.Subscriber == "" {
				return &LoadError{Message: fmt.Sprintf("step %d: %s requires a subscriber", i+1, step.Action)}
			}
			if !declared[step.Subscriber] {
				return &LoadError{Message: fmt.Sprintf("step %d: undeclared subscriber %q", i+1, step.Subscriber)}
			}
		}
		if step.Expect != nil && step.Expect.Found != nil && step.Action != ActionHas {
			return &LoadError{Message: fmt.Sprintf("step %d: found can only be checked on has", i+1)}
		}
		if step.Expect != nil && step.Expect.Delivered != nil && step.Action != ActionNotify {
			return &LoadError{Message: fmt.Sprintf("step %d: delivered can only be checked on notify", i+1)}
		}
	}
	return nil
}

// LoadScenario loads a scenario from a file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	sc, err := ParseScenario(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return sc, nil
}

// LoadDirectory loads all scenarios from a directory, sorted by file name.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]*Scenario, 0, len(names))
	for _, name := range names {
		sc, err := LoadScenario(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// Load loads a single scenario file or every scenario in a directory.
func Load(path string) ([]*Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to stat", Cause: err}
	}
	if info.IsDir() {
		return LoadDirectory(path)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return []*Scenario{sc}, nil
}
