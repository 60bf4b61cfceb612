package matrix

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"ddsmatrix/internal/compose"
)

type orchestratorCall struct {
	Op       string
	Project  string
	Tag      string // IMAGE_TALKER of the call
	Services []string
	CtxErr   error
}

// fakeOrchestrator records every call and serves scripted listener output.
type fakeOrchestrator struct {
	mu    sync.Mutex
	calls []orchestratorCall

	buildErr map[string]error // keyed by IMAGE_TALKER
	upErr    map[string]error // keyed by project
	logsErr  map[string]error // keyed by project
	downErr  error

	// lines returns the listener output of a project and whether the stream
	// ends after it. Defaults to ten markers followed by a hang.
	lines func(project string) ([]string, bool)

	terminated atomic.Int32
}

func newFakeOrchestrator() *fakeOrchestrator {
	return &fakeOrchestrator{
		buildErr: map[string]error{},
		upErr:    map[string]error{},
		logsErr:  map[string]error{},
	}
}

func (f *fakeOrchestrator) record(ctx context.Context, op string, env compose.Environment, services []string) orchestratorCall {
	project, _ := env.Get(compose.EnvProjectName)
	tag, _ := env.Get(compose.EnvImageTalker)
	c := orchestratorCall{Op: op, Project: project, Tag: tag, Services: services, CtxErr: ctx.Err()}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	return c
}

func (f *fakeOrchestrator) Build(ctx context.Context, env compose.Environment, services ...string) error {
	c := f.record(ctx, "build", env, services)
	return f.buildErr[c.Tag]
}

func (f *fakeOrchestrator) Up(ctx context.Context, env compose.Environment, services ...string) error {
	c := f.record(ctx, "up", env, services)
	return f.upErr[c.Project]
}

func (f *fakeOrchestrator) Down(ctx context.Context, env compose.Environment) error {
	f.record(ctx, "down", env, nil)
	return f.downErr
}

func (f *fakeOrchestrator) Logs(ctx context.Context, env compose.Environment, service string) (compose.Stream, error) {
	c := f.record(ctx, "logs", env, []string{service})
	if err := f.logsErr[c.Project]; err != nil {
		return nil, err
	}

	lines, closeAfter := heardLines(10), false
	if f.lines != nil {
		lines, closeAfter = f.lines(c.Project)
	}

	r, w := io.Pipe()
	go func() {
		for _, l := range lines {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return
			}
		}
		if closeAfter {
			w.Close()
		}
	}()
	return &fakeStream{PipeReader: r, terminated: &f.terminated}, nil
}

func (f *fakeOrchestrator) callsOf(op string) []orchestratorCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []orchestratorCall
	for _, c := range f.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

type fakeStream struct {
	*io.PipeReader
	terminated *atomic.Int32
}

func (s *fakeStream) Terminate() error {
	s.terminated.Add(1)
	return s.PipeReader.Close()
}

func heardLines(n int) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("listener-1  | [INFO] [listener]: I heard: [Hello World: %d]", i))
	}
	return lines
}
