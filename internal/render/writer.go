package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/videoplan/internal/audioplan"
)

// MixPlan wraps the ordered audio directives for serialization.
type MixPlan struct {
	Version    string                `yaml:"version"`
	Directives []audioplan.Directive `yaml:"directives"`
}

// WritePlan writes a render plan to a YAML file.
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlan reads a render plan from a YAML file.
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// WriteMixPlan writes the audio mix plan to a YAML file.
func WriteMixPlan(directives []audioplan.Directive, path string) error {
	data, err := yaml.Marshal(&MixPlan{Version: "1.0", Directives: directives})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadMixPlan reads an audio mix plan from a YAML file.
func ReadMixPlan(path string) (*MixPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mp MixPlan
	if err := yaml.Unmarshal(data, &mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// GeneratePlanPath creates a timestamped plan filename in dir.
func GeneratePlanPath(dir, prefix string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", prefix, timestamp))
}
