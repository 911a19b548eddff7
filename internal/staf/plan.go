package staf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is a serialized placement plan. The read-only analysis pass exports
// one; the write pass can consume it later without re-reading the source
// workbook.
type Plan struct {
	Target     string      `yaml:"target"`
	Sheet      string      `yaml:"sheet"`
	ShipCode   string      `yaml:"ship_code"`
	Metric     Metric      `yaml:"metric"`
	Placements []Placement `yaml:"placements"`
}

// WritePlanFile saves the plan as YAML.
func WritePlanFile(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("could not encode plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write plan %s: %w", path, err)
	}
	return nil
}

// ReadPlanFile loads a placement plan written by WritePlanFile.
func ReadPlanFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read plan %s: %w", path, err)
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("invalid plan file %s: %w", path, err)
	}
	if len(plan.Placements) == 0 {
		return nil, fmt.Errorf("plan %s contains no placements", path)
	}
	return &plan, nil
}
