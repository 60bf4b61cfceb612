package compose

import (
	"os"
	"sort"
	"strings"
)

// Variables understood by the compose descriptor.
const (
	EnvROSDistro         = "ROS_DISTRO"
	EnvBaseImageTalker   = "BASE_IMAGE_TALKER"
	EnvBaseImageListener = "BASE_IMAGE_LISTENER"
	EnvImageTalker       = "IMAGE_TALKER"
	EnvImageListener     = "IMAGE_LISTENER"
	EnvProjectName       = "COMPOSE_PROJECT_NAME"
)

// Environment is an immutable set of environment variables for one
// invocation. The zero value is an empty environment.
type Environment struct {
	vars map[string]string
}

// NewEnvironment parses KEY=VALUE entries as returned by os.Environ.
// Later duplicates win, entries without '=' are ignored.
func NewEnvironment(entries []string) Environment {
	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return Environment{vars: vars}
}

// InheritedEnvironment returns the environment of the current process.
func InheritedEnvironment() Environment {
	return NewEnvironment(os.Environ())
}

// With returns a copy of e with overrides applied. e is left untouched.
func (e Environment) With(overrides map[string]string) Environment {
	vars := make(map[string]string, len(e.vars)+len(overrides))
	for k, v := range e.vars {
		vars[k] = v
	}
	for k, v := range overrides {
		vars[k] = v
	}
	return Environment{vars: vars}
}

// Get returns the value of key and whether it is set.
func (e Environment) Get(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Len returns the number of variables.
func (e Environment) Len() int {
	return len(e.vars)
}

// Environ returns the variables as sorted KEY=VALUE entries suitable for
// exec.Cmd.Env.
func (e Environment) Environ() []string {
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
