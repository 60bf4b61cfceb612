package config

import (
	"time"
)

// MatrixConfig is the top-level configuration structure for ddsmatrix.
// It is built once per run by LoadConfig, validated, and then passed by
// value to the matrix runner.
type MatrixConfig struct {
	Distro    string `yaml:"distro,omitempty"`    // ROS distribution passed as ROS_DISTRO, e.g. "humble"
	Transport string `yaml:"transport,omitempty"` // DDS implementation name used in image tags, e.g. "fastdds"

	// Marker is the substring counted in the listener output.
	Marker string `yaml:"marker,omitempty"`
	// TargetMessages is the number of marker lines that makes a pair successful.
	TargetMessages int `yaml:"targetMessages,omitempty"`
	// Timeout bounds how long the listener output is observed for one pair.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// ProgressInterval is how often observation progress is logged while waiting.
	ProgressInterval time.Duration `yaml:"progressInterval,omitempty"`
	// TeardownTimeout bounds the best-effort `compose down` after each pair.
	TeardownTimeout time.Duration `yaml:"teardownTimeout,omitempty"`

	// ProjectPrefix is prepended to every compose project name.
	ProjectPrefix string `yaml:"projectPrefix,omitempty"`

	Compose    ComposeSettings `yaml:"compose,omitempty"`
	BaseImages []BaseImage     `yaml:"baseImages,omitempty"`
}

// ComposeSettings describes how the container orchestration CLI is invoked.
type ComposeSettings struct {
	Command         []string      `yaml:"command,omitempty"`         // e.g. ["docker", "compose"] or ["podman-compose"]
	Files           []string      `yaml:"files,omitempty"`           // Optional compose files passed with -f
	WorkDir         string        `yaml:"workDir,omitempty"`         // Directory the CLI resolves its descriptor from
	TalkerService   string        `yaml:"talkerService,omitempty"`   // Defaults to "<distro>_talker"
	ListenerService string        `yaml:"listenerService,omitempty"` // Defaults to "<distro>_listener"
	StopGracePeriod time.Duration `yaml:"stopGracePeriod,omitempty"` // SIGTERM to SIGKILL delay for the log follower
}

// BaseImage is one container base image variant under test.
type BaseImage struct {
	Image string `yaml:"image"` // Image reference, e.g. "ros:humble-ros-base"
	Label string `yaml:"label"` // Human label used for tags, project names and the summary
}
