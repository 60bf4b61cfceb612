package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEnvironment(t *testing.T) {
	env := NewEnvironment([]string{"A=1", "B=x=y", "NOEQUALS", "=empty", "A=2"})

	v, ok := env.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = env.Get("B")
	assert.True(t, ok)
	assert.Equal(t, "x=y", v)

	_, ok = env.Get("NOEQUALS")
	assert.False(t, ok)
	assert.Equal(t, 2, env.Len())
}

func TestEnvironmentWith_DoesNotMutate(t *testing.T) {
	base := NewEnvironment([]string{"PATH=/usr/bin", "ROS_DISTRO=foxy"})
	derived := base.With(map[string]string{EnvROSDistro: "humble", EnvProjectName: "dds-a-b"})

	v, _ := base.Get(EnvROSDistro)
	assert.Equal(t, "foxy", v)
	_, ok := base.Get(EnvProjectName)
	assert.False(t, ok)

	v, _ = derived.Get(EnvROSDistro)
	assert.Equal(t, "humble", v)
	v, _ = derived.Get("PATH")
	assert.Equal(t, "/usr/bin", v)
	assert.Equal(t, []string{"COMPOSE_PROJECT_NAME=dds-a-b", "PATH=/usr/bin", "ROS_DISTRO=humble"}, derived.Environ())
}

func TestEnvironmentZeroValue(t *testing.T) {
	var env Environment
	assert.Empty(t, env.Environ())

	withVar := env.With(map[string]string{"K": "V"})
	assert.Equal(t, []string{"K=V"}, withVar.Environ())
}

func TestInheritedEnvironment(t *testing.T) {
	t.Setenv("DDSMATRIX_TEST_VAR", "inherited")

	v, ok := InheritedEnvironment().Get("DDSMATRIX_TEST_VAR")
	assert.True(t, ok)
	assert.Equal(t, "inherited", v)
}
