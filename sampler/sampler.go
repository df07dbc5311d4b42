package sampler

import (
	"log/slog"
	"time"

	"lagmeter/stats"
)

// Target performs one network operation. A nil return means the operation
// completed and its elapsed time counts; any error skips the attempt.
type Target func() error

// Sample is one measured attempt. Finalized when the attempt completes and
// immutable afterwards.
type Sample struct {
	Start      time.Time
	DurationMs float64
	Succeeded  bool
}

type Options struct {
	Attempts int
	Delay    time.Duration
	// OnProgress fires after every attempt, failed ones included.
	OnProgress func(done, total int)
}

type Sampler struct {
	options *Options
}

func NewSampler(options *Options) *Sampler {
	return &Sampler{options: options}
}

// RunBatch invokes the target once per attempt, sleeping the configured
// delay before each one. Failed attempts are logged and skipped; the batch
// never aborts early. An all-failure batch returns a zero-count summary.
func (s *Sampler) RunBatch(target Target) stats.Summary {
	samples := make([]Sample, 0, s.options.Attempts)
	for i := 0; i < s.options.Attempts; i++ {
		time.Sleep(s.options.Delay)
		sample := s.attempt(target)
		if sample.Succeeded {
			samples = append(samples, sample)
		}
		if s.options.OnProgress != nil {
			s.options.OnProgress(i+1, s.options.Attempts)
		}
	}
	durations := make([]float64, 0, len(samples))
	for _, sample := range samples {
		durations = append(durations, sample.DurationMs)
	}
	return stats.NewSummary(durations)
}

func (s *Sampler) attempt(target Target) Sample {
	start := time.Now()
	if err := target(); err != nil {
		slog.Warn("[Sampler] Attempt failed", "error", err)
		return Sample{Start: start}
	}
	return Sample{
		Start:      start,
		DurationMs: float64(time.Since(start)) / 1e6,
		Succeeded:  true,
	}
}
