package observer

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/sourcegraph/conc"

	"ddsmatrix/pkg/logging"
)

const (
	defaultProgressInterval = 5 * time.Second
	// Longer lines are truncated to maxLineSize; reading continues with the next line.
	maxLineSize = 1024 * 1024
)

// Stream is the output of a running log follower.
type Stream interface {
	io.Reader
	Terminate() error
}

// StopReason tells why an observation ended.
type StopReason int

const (
	// TargetReached means the marker was seen Target times.
	TargetReached StopReason = iota
	// TimedOut means Timeout elapsed first.
	TimedOut
	// StreamClosed means the follower exited with no further output.
	StreamClosed
	// Cancelled means the context was cancelled.
	Cancelled
)

func (r StopReason) String() string {
	switch r {
	case TargetReached:
		return "target reached"
	case TimedOut:
		return "timed out"
	case StreamClosed:
		return "stream closed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options configures an Observer.
type Options struct {
	Marker           string        // substring counted per line
	Target           int           // count that ends the observation early
	Timeout          time.Duration // wall-clock bound from observation start
	ProgressInterval time.Duration // how often progress is logged while waiting
	Name             string        // identifies the observed stream in logs
}

// Result is the outcome of one observation.
type Result struct {
	Count   int // in [0, Target]
	Reason  StopReason
	Elapsed time.Duration
}

// Observer counts marker lines in log streams.
type Observer struct {
	opts Options
}

// New creates an Observer.
func New(opts Options) *Observer {
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = defaultProgressInterval
	}
	return &Observer{opts: opts}
}

// Count observes stream and returns the number of marker lines seen.
func (o *Observer) Count(ctx context.Context, stream Stream) int {
	return o.Observe(ctx, stream).Count
}

// Observe reads stream line by line until one of the stop conditions holds.
// stream is always terminated before Observe returns.
func (o *Observer) Observe(ctx context.Context, stream Stream) Result {
	start := time.Now()

	lines := make(chan string)
	stop := make(chan struct{})

	var reader conc.WaitGroup
	reader.Go(func() {
		defer close(lines)
		err := readLines(stream, func(line string) bool {
			select {
			case lines <- line:
				return true
			case <-stop:
				return false
			}
		})
		if err != nil {
			logging.Debug("Observer", "Reading %s stopped: %v", o.opts.Name, err)
		}
	})

	defer func() {
		close(stop)
		if err := stream.Terminate(); err != nil {
			logging.Warn("Observer", "Failed to stop log follower for %s: %v", o.opts.Name, err)
		}
		reader.Wait()
	}()

	finish := func(count int, reason StopReason) Result {
		res := Result{Count: count, Reason: reason, Elapsed: time.Since(start)}
		logging.Debug("Observer", "Observation of %s ended: %d/%d (%s after %v)",
			o.opts.Name, res.Count, o.opts.Target, res.Reason, res.Elapsed.Round(time.Millisecond))
		return res
	}

	if o.opts.Target <= 0 {
		return finish(0, TargetReached)
	}

	timeout := time.NewTimer(o.opts.Timeout)
	defer timeout.Stop()
	progress := time.NewTicker(o.opts.ProgressInterval)
	defer progress.Stop()

	count := 0
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return finish(count, StreamClosed)
			}
			if strings.Contains(stripansi.Strip(line), o.opts.Marker) {
				count++
				if count >= o.opts.Target {
					return finish(count, TargetReached)
				}
			}
			if time.Since(start) >= o.opts.Timeout {
				return finish(count, TimedOut)
			}
		case <-timeout.C:
			return finish(count, TimedOut)
		case <-progress.C:
			logging.Debug("Observer", "Waiting on %s: %d/%d after %v",
				o.opts.Name, count, o.opts.Target, time.Since(start).Round(time.Second))
		case <-ctx.Done():
			return finish(count, Cancelled)
		}
	}
}

// readLines calls emit for every line of r without its line ending until r
// is exhausted or emit returns false. Lines longer than maxLineSize are
// truncated. A final line without a newline is emitted as well.
func readLines(r io.Reader, emit func(string) bool) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if len(line) > 0 {
				emit(string(line))
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if room := maxLineSize - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		if isPrefix {
			continue
		}
		if !emit(string(line)) {
			return nil
		}
		line = line[:0]
	}
}
