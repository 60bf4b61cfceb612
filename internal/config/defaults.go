package config

import (
	"fmt"
	"time"
)

const (
	DefaultDistro           = "humble"
	DefaultTransport        = "fastdds"
	DefaultMarker           = "I heard"
	DefaultTargetMessages   = 10
	DefaultTimeout          = 30 * time.Second
	DefaultProgressInterval = 5 * time.Second
	DefaultTeardownTimeout  = 2 * time.Minute
	DefaultProjectPrefix    = "dds"
	DefaultStopGracePeriod  = 5 * time.Second
)

// DefaultBaseImages are the Humble variants tested when no configuration
// overrides the list.
func DefaultBaseImages() []BaseImage {
	return []BaseImage{
		{Image: "ros:humble-ros-base", Label: "ros-base"},
		{Image: "osrf/ros:humble-desktop", Label: "desktop"},
		{Image: "ros:humble-ros-base-jammy", Label: "ros-base-jammy"},
	}
}

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() MatrixConfig {
	return MatrixConfig{
		Distro:           DefaultDistro,
		Transport:        DefaultTransport,
		Marker:           DefaultMarker,
		TargetMessages:   DefaultTargetMessages,
		Timeout:          DefaultTimeout,
		ProgressInterval: DefaultProgressInterval,
		TeardownTimeout:  DefaultTeardownTimeout,
		ProjectPrefix:    DefaultProjectPrefix,
		Compose: ComposeSettings{
			Command:         []string{"docker", "compose"},
			StopGracePeriod: DefaultStopGracePeriod,
		},
		BaseImages: DefaultBaseImages(),
	}
}

// TalkerService returns the configured talker service or the distro default.
func (c MatrixConfig) TalkerService() string {
	if c.Compose.TalkerService != "" {
		return c.Compose.TalkerService
	}
	return fmt.Sprintf("%s_talker", c.Distro)
}

// ListenerService returns the configured listener service or the distro default.
func (c MatrixConfig) ListenerService() string {
	if c.Compose.ListenerService != "" {
		return c.Compose.ListenerService
	}
	return fmt.Sprintf("%s_listener", c.Distro)
}
