package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Validate(GetDefaultConfig()))
}

func TestValidate_Bounds(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.TargetMessages = 0
	cfg.Timeout = 0
	cfg.Marker = ""
	cfg.Compose.Command = nil

	err := Validate(cfg)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 4)
	assert.Contains(t, err.Error(), "targetMessages must be at least 1")
	assert.Contains(t, err.Error(), "timeout must be positive")
}

func TestValidate_NoImages(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.BaseImages = nil

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one base image")
}

func TestValidate_SlugCollision(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.BaseImages = []BaseImage{
		{Image: "ros:humble-ros-base", Label: "ros:base"},
		{Image: "ros:humble-ros-core", Label: "ros/base"},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `slug to "ros-base"`)
}

func TestValidate_ProjectNameCollisionAcrossPairs(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.BaseImages = []BaseImage{
		{Image: "img-1", Label: "a-b"},
		{Image: "img-2", Label: "c"},
		{Image: "img-3", Label: "a"},
		{Image: "img-4", Label: "b-c"},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `share project name "dds-a-b-c"`)
}

func TestValidate_InvalidDerivedNames(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.BaseImages = []BaseImage{{Image: "ros:humble", Label: "Desktop Full"}}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid image name")
	assert.Contains(t, err.Error(), "not a valid compose project name")
}

func TestValidate_SameServices(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Compose.TalkerService = "node"
	cfg.Compose.ListenerService = "node"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services must differ")
}
