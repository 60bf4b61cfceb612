package matrix

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ddsmatrix/internal/compose"
	"ddsmatrix/internal/config"
	"ddsmatrix/internal/naming"
	"ddsmatrix/internal/observer"
	"ddsmatrix/pkg/logging"
)

// Orchestrator is the subset of the compose CLI the matrix needs.
// *compose.Client implements it.
type Orchestrator interface {
	Build(ctx context.Context, env compose.Environment, services ...string) error
	Up(ctx context.Context, env compose.Environment, services ...string) error
	Down(ctx context.Context, env compose.Environment) error
	Logs(ctx context.Context, env compose.Environment, service string) (compose.Stream, error)
}

// Runner drives builds and pair tests for one configuration.
type Runner struct {
	cfg          config.MatrixConfig
	orchestrator Orchestrator
	reporter     Reporter
	baseEnv      compose.Environment
	runID        string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithBaseEnvironment replaces the inherited process environment that every
// invocation starts from.
func WithBaseEnvironment(env compose.Environment) Option {
	return func(r *Runner) {
		r.baseEnv = env
	}
}

// WithRunID sets the identifier reported for the run.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// NewRunner creates a runner. cfg is expected to be validated.
func NewRunner(cfg config.MatrixConfig, orchestrator Orchestrator, reporter Reporter, opts ...Option) *Runner {
	r := &Runner{
		cfg:          cfg,
		orchestrator: orchestrator,
		reporter:     reporter,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.baseEnv.Len() == 0 {
		r.baseEnv = compose.InheritedEnvironment()
	}
	if r.runID == "" {
		r.runID = NewRunID()
	}
	return r
}

// NewRunID returns a short random run identifier.
func NewRunID() string {
	return uuid.NewString()[:8]
}

// RunID returns the identifier of this run.
func (r *Runner) RunID() string {
	return r.runID
}

// ImageTag returns the tag built for img.
func (r *Runner) ImageTag(img config.BaseImage) string {
	return naming.ImageTag(r.cfg.Distro, r.cfg.Transport, img.Label)
}

// ProjectName returns the compose project isolating p.
func (r *Runner) ProjectName(p Pair) string {
	return naming.ProjectName(r.cfg.ProjectPrefix, p.Talker.Label, p.Listener.Label)
}

// BuildEnvironment returns the environment used to build img. Talker and
// listener share both the base image and the resulting tag.
func (r *Runner) BuildEnvironment(img config.BaseImage) compose.Environment {
	tag := r.ImageTag(img)
	return r.baseEnv.With(map[string]string{
		compose.EnvROSDistro:         r.cfg.Distro,
		compose.EnvBaseImageTalker:   img.Image,
		compose.EnvBaseImageListener: img.Image,
		compose.EnvImageTalker:       tag,
		compose.EnvImageListener:     tag,
	})
}

// PairEnvironment returns the environment used to run p.
func (r *Runner) PairEnvironment(p Pair) compose.Environment {
	return r.baseEnv.With(map[string]string{
		compose.EnvROSDistro:         r.cfg.Distro,
		compose.EnvBaseImageTalker:   p.Talker.Image,
		compose.EnvBaseImageListener: p.Listener.Image,
		compose.EnvImageTalker:       r.ImageTag(p.Talker),
		compose.EnvImageListener:     r.ImageTag(p.Listener),
		compose.EnvProjectName:       r.ProjectName(p),
	})
}

// BuildAll builds the talker and listener images of every base image once,
// in configuration order. The first failure is returned.
func (r *Runner) BuildAll(ctx context.Context) error {
	for _, img := range r.cfg.BaseImages {
		tag := r.ImageTag(img)
		r.reporter.ReportBuild(img, tag)
		logging.Info("Matrix", "Building %s from %s as %s", img.Label, img.Image, tag)

		if err := r.orchestrator.Build(ctx, r.BuildEnvironment(img), r.cfg.TalkerService(), r.cfg.ListenerService()); err != nil {
			return fmt.Errorf("failed to build images for %s: %w", img.Label, err)
		}
	}
	return nil
}

// TestPair starts p, counts marker lines in the listener output and tears the
// project down again. A start failure is returned without teardown; once the
// services are up, teardown always runs exactly once.
func (r *Runner) TestPair(ctx context.Context, p Pair) (result PairResult, err error) {
	start := time.Now()
	project := r.ProjectName(p)
	env := r.PairEnvironment(p)

	result = PairResult{
		Talker:   p.Talker.Label,
		Listener: p.Listener.Label,
		Project:  project,
		Target:   r.cfg.TargetMessages,
	}

	r.reporter.ReportPairStart(p, project)

	// Start detached
	if err := r.orchestrator.Up(ctx, env, r.cfg.TalkerService(), r.cfg.ListenerService()); err != nil {
		return result, fmt.Errorf("failed to start %s: %w", project, err)
	}

	// Tear down regardless of how observation ends
	defer func() {
		r.teardown(ctx, project, env)
		result.Duration = time.Since(start)
	}()

	// Observe the listener
	stream, err := r.orchestrator.Logs(ctx, env, r.cfg.ListenerService())
	if err != nil {
		return result, fmt.Errorf("failed to observe %s: %w", project, err)
	}

	obs := observer.New(observer.Options{
		Marker:           r.cfg.Marker,
		Target:           r.cfg.TargetMessages,
		Timeout:          r.cfg.Timeout,
		ProgressInterval: r.cfg.ProgressInterval,
		Name:             project,
	})
	observed := obs.Observe(ctx, stream)
	result.Successes = observed.Count
	result.Reason = observed.Reason

	return result, nil
}

func (r *Runner) teardown(ctx context.Context, project string, env compose.Environment) {
	// Detached from cancellation so an interrupted run still cleans up.
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.TeardownTimeout)
	defer cancel()

	if err := r.orchestrator.Down(cleanupCtx, env); err != nil {
		logging.Warn("Matrix", "Teardown of %s failed: %v", project, err)
		return
	}
	logging.Debug("Matrix", "Teardown of %s complete", project)
}

// Run builds every base image and then tests every pair in order. The
// returned summary holds the results gathered so far even when an error
// stops the run; it is reported in both cases.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	pairs := Pairs(r.cfg.BaseImages)
	summary := Summary{
		RunID:      r.runID,
		StartedAt:  time.Now(),
		Target:     r.cfg.TargetMessages,
		TotalPairs: len(pairs),
		Results:    make([]PairResult, 0, len(pairs)),
	}

	r.reporter.ReportStart(r.cfg, r.runID)

	finish := func(err error) (Summary, error) {
		summary.Duration = time.Since(summary.StartedAt)
		summary.Err = err
		r.reporter.ReportSummary(summary)
		return summary, err
	}

	if err := r.BuildAll(ctx); err != nil {
		return finish(err)
	}

	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return finish(fmt.Errorf("run interrupted before %s: %w", r.ProjectName(p), err))
		}

		result, err := r.TestPair(ctx, p)
		if err != nil {
			return finish(err)
		}
		summary.Results = append(summary.Results, result)
		r.reporter.ReportPairResult(result)

		logging.Info("Matrix", "Pair %s: %d/%d (%s)", result.Project, result.Successes, result.Target, result.Reason)
	}

	return finish(nil)
}
