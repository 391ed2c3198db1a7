package workload

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/rrsim/sim"
)

// GeneratorSpec configures synthetic workload generation.
type GeneratorSpec struct {
	Count   int         `yaml:"count"`
	Seed    int64       `yaml:"seed"`
	Arrival ArrivalSpec `yaml:"arrival"`
	Burst   DistSpec    `yaml:"burst"`
}

// ArrivalSpec configures the inter-arrival process.
type ArrivalSpec struct {
	Process string  `yaml:"process"` // "poisson" or "constant"
	Rate    float64 `yaml:"rate"`    // arrivals per tick
}

// DistSpec parameterizes a burst time distribution.
type DistSpec struct {
	Type   string             `yaml:"type"` // "constant", "uniform", "exponential", "gaussian"
	Params map[string]float64 `yaml:"params,omitempty"`
}

// ArrivalSampler generates inter-arrival gaps in ticks. A gap of 0 means
// the next process arrives on the same tick.
type ArrivalSampler interface {
	SampleGap(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed gaps.
type PoissonSampler struct {
	rate float64
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() / s.rate)
}

// ConstantArrivalSampler spaces arrivals evenly.
type ConstantArrivalSampler struct {
	gap int64
}

func (s *ConstantArrivalSampler) SampleGap(_ *rand.Rand) int64 {
	return s.gap
}

// NewArrivalSampler creates an ArrivalSampler from a spec.
func NewArrivalSampler(spec ArrivalSpec) (ArrivalSampler, error) {
	if spec.Rate <= 0 || math.IsNaN(spec.Rate) || math.IsInf(spec.Rate, 0) {
		return nil, fmt.Errorf("arrival rate must be a positive finite number, got %v", spec.Rate)
	}
	switch spec.Process {
	case "", "poisson":
		return &PoissonSampler{rate: spec.Rate}, nil
	case "constant":
		return &ConstantArrivalSampler{gap: int64(math.Round(1.0 / spec.Rate))}, nil
	default:
		return nil, fmt.Errorf("unknown arrival process %q; valid: poisson, constant", spec.Process)
	}
}

// BurstSampler draws burst times. Always returns a value >= 1.
type BurstSampler interface {
	SampleBurst(rng *rand.Rand) int64
}

// ConstantBurstSampler always returns the same burst.
type ConstantBurstSampler struct{ value int64 }

func (s *ConstantBurstSampler) SampleBurst(_ *rand.Rand) int64 { return s.value }

// UniformBurstSampler draws uniformly from [min, max].
type UniformBurstSampler struct{ min, max int64 }

func (s *UniformBurstSampler) SampleBurst(rng *rand.Rand) int64 {
	return s.min + rng.Int63n(s.max-s.min+1)
}

// ExponentialBurstSampler draws exponentially distributed bursts with the given mean.
type ExponentialBurstSampler struct{ mean float64 }

func (s *ExponentialBurstSampler) SampleBurst(rng *rand.Rand) int64 {
	return max(1, int64(math.Round(rng.ExpFloat64()*s.mean)))
}

// GaussianBurstSampler draws normally distributed bursts clamped to [min, max].
type GaussianBurstSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianBurstSampler) SampleBurst(rng *rand.Rand) int64 {
	v := int64(math.Round(rng.NormFloat64()*s.stdDev + s.mean))
	return min(max(v, s.min), s.max)
}

// NewBurstSampler creates a BurstSampler from a spec.
func NewBurstSampler(spec DistSpec) (BurstSampler, error) {
	p := spec.Params
	switch spec.Type {
	case "constant":
		v := int64(p["value"])
		if v < 1 {
			return nil, fmt.Errorf("constant burst value must be >= 1, got %v", p["value"])
		}
		return &ConstantBurstSampler{value: v}, nil
	case "uniform":
		lo, hi := int64(p["min"]), int64(p["max"])
		if lo < 1 || hi < lo {
			return nil, fmt.Errorf("uniform burst needs 1 <= min <= max, got min=%v max=%v", p["min"], p["max"])
		}
		return &UniformBurstSampler{min: lo, max: hi}, nil
	case "exponential":
		if p["mean"] <= 0 {
			return nil, fmt.Errorf("exponential burst mean must be positive, got %v", p["mean"])
		}
		return &ExponentialBurstSampler{mean: p["mean"]}, nil
	case "gaussian":
		lo, hi := int64(p["min"]), int64(p["max"])
		if lo < 1 {
			lo = 1
		}
		if hi == 0 {
			hi = math.MaxInt64
		}
		if hi < lo || p["std_dev"] < 0 {
			return nil, fmt.Errorf("gaussian burst needs min <= max and std_dev >= 0")
		}
		return &GaussianBurstSampler{mean: p["mean"], stdDev: p["std_dev"], min: lo, max: hi}, nil
	default:
		return nil, fmt.Errorf("unknown burst distribution %q; valid: constant, uniform, exponential, gaussian", spec.Type)
	}
}

// GenerateProcesses draws spec.Count processes with PIDs 1..Count, the first
// arriving at tick 0. The same spec always yields the same table.
func GenerateProcesses(spec GeneratorSpec) ([]sim.Process, error) {
	if spec.Count < 0 {
		return nil, fmt.Errorf("count must be non-negative, got %d", spec.Count)
	}
	arrivals, err := NewArrivalSampler(spec.Arrival)
	if err != nil {
		return nil, err
	}
	bursts, err := NewBurstSampler(spec.Burst)
	if err != nil {
		return nil, err
	}

	rng := sim.NewPartitionedRNG(spec.Seed)
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	burstRNG := rng.ForSubsystem(sim.SubsystemBursts)

	procs := make([]sim.Process, 0, spec.Count)
	var clock int64
	for i := 0; i < spec.Count; i++ {
		if i > 0 {
			clock += arrivals.SampleGap(arrivalRNG)
		}
		procs = append(procs, sim.NewProcess(int64(i+1), clock, bursts.SampleBurst(burstRNG)))
	}
	logrus.Debugf("Generated %d processes (seed=%d, last arrival=%d)", len(procs), spec.Seed, clock)
	return procs, nil
}

// WriteProcessFile writes procs in the text process format read by ParseProcesses.
func WriteProcessFile(w io.Writer, procs []sim.Process) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(procs))
	for _, p := range procs {
		fmt.Fprintf(bw, "%d, %d, %d\n", p.PID, p.ArrivalTime, p.BurstTime)
	}
	return bw.Flush()
}
