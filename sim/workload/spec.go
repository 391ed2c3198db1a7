package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/rrsim/sim"
)

// WorkloadSpec is the YAML workload format.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string        `yaml:"version"`
	Quantum   *int64        `yaml:"quantum,omitempty"` // optional default quantum
	Processes []ProcessSpec `yaml:"processes"`
}

// ProcessSpec is one process descriptor.
type ProcessSpec struct {
	PID     int64 `yaml:"pid"`
	Arrival int64 `yaml:"arrival"`
	Burst   int64 `yaml:"burst"`
}

// LoadWorkloadSpec reads and validates a YAML workload spec.
// Unknown fields are rejected so typos surface as errors.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	spec, err := ParseWorkloadSpec(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// ParseWorkloadSpec decodes and validates an in-memory YAML workload spec.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks every descriptor: non-negative pid and arrival, positive burst.
func (s *WorkloadSpec) Validate() error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported workload spec version %q", s.Version)
	}
	for i, p := range s.Processes {
		if p.PID < 0 {
			return fmt.Errorf("processes[%d]: pid must be non-negative, got %d", i, p.PID)
		}
		if p.Arrival < 0 {
			return fmt.Errorf("processes[%d]: arrival must be non-negative, got %d", i, p.Arrival)
		}
		if p.Burst <= 0 {
			return fmt.Errorf("processes[%d]: burst must be positive, got %d", i, p.Burst)
		}
	}
	return nil
}

// ToProcesses converts the descriptors into a process table, keeping file order.
func (s *WorkloadSpec) ToProcesses() []sim.Process {
	procs := make([]sim.Process, 0, len(s.Processes))
	for _, p := range s.Processes {
		procs = append(procs, sim.NewProcess(p.PID, p.Arrival, p.Burst))
	}
	return procs
}
