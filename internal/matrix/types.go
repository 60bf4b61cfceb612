package matrix

import (
	"time"

	"ddsmatrix/internal/config"
	"ddsmatrix/internal/observer"
)

// Pair is one ordered (talker, listener) combination of base images.
type Pair struct {
	Talker   config.BaseImage
	Listener config.BaseImage
}

// Pairs returns the Cartesian product of images as an explicit sequence,
// talker-major and listener-minor, following the order of images.
func Pairs(images []config.BaseImage) []Pair {
	pairs := make([]Pair, 0, len(images)*len(images))
	for _, talker := range images {
		for _, listener := range images {
			pairs = append(pairs, Pair{Talker: talker, Listener: listener})
		}
	}
	return pairs
}

// Status classifies a pair result.
type Status string

const (
	// StatusPass means every expected message was received.
	StatusPass Status = "PASS"
	// StatusPartial means some, but not all, messages were received.
	StatusPartial Status = "PARTIAL"
	// StatusFail means no message was received.
	StatusFail Status = "FAIL"
)

// PairResult is the outcome of testing one pair.
type PairResult struct {
	Talker    string
	Listener  string
	Project   string
	Successes int
	Target    int
	Reason    observer.StopReason
	Duration  time.Duration
}

// Status returns PASS, PARTIAL or FAIL depending on Successes.
func (r PairResult) Status() Status {
	switch {
	case r.Successes >= r.Target:
		return StatusPass
	case r.Successes > 0:
		return StatusPartial
	default:
		return StatusFail
	}
}

// Summary collects the results of a run in iteration order.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	Duration   time.Duration
	Target     int
	TotalPairs int // planned number of pairs
	Results    []PairResult
	// Err is the fatal error that stopped the run, if any.
	Err error
}

// Passed returns the number of pairs that received every message.
func (s Summary) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Status() == StatusPass {
			n++
		}
	}
	return n
}

// Interrupted returns the number of pairs whose observation was cut short by
// cancellation rather than ending on its own.
func (s Summary) Interrupted() int {
	n := 0
	for _, r := range s.Results {
		if r.Reason == observer.Cancelled {
			n++
		}
	}
	return n
}

// Complete reports whether every planned pair was tested.
func (s Summary) Complete() bool {
	return s.Err == nil && len(s.Results) == s.TotalPairs
}
