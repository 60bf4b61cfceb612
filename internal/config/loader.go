package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ddsmatrix/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/ddsmatrix"
	projectConfigDir = ".ddsmatrix"
	configFileName   = "config.yaml"
)

// LoadConfig loads the ddsmatrix configuration by layering default, user and
// project settings, followed by the file at explicitPath when it is not empty.
// Optional layers that do not exist are skipped; an explicit file must exist.
func LoadConfig(explicitPath string) (MatrixConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Log this error but don't fail; user config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else {
		config, err = mergeOptionalFile(config, userConfigPath)
		if err != nil {
			return MatrixConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else {
		config, err = mergeOptionalFile(config, projectConfigPath)
		if err != nil {
			return MatrixConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
	}

	// 4. Explicit configuration file
	if explicitPath != "" {
		explicitConfig, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return MatrixConfig{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		logging.Debug("Config", "Loaded config from %s", explicitPath)
		config = Merge(config, explicitConfig)
	}

	return config, nil
}

func mergeOptionalFile(base MatrixConfig, path string) (MatrixConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return MatrixConfig{}, err
	}
	logging.Debug("Config", "Loaded config from %s", path)
	return Merge(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a MatrixConfig from a YAML file.
func loadConfigFromFile(filePath string) (MatrixConfig, error) {
	var config MatrixConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return MatrixConfig{}, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file, nothing to overlay
			return MatrixConfig{}, nil
		}
		return MatrixConfig{}, err
	}
	return config, nil
}

// Merge merges 'overlay' config into 'base' config. Scalar fields override
// when set in overlay; the base image list is replaced as a whole so its
// order stays under the control of a single layer.
func Merge(base, overlay MatrixConfig) MatrixConfig {
	merged := base

	if overlay.Distro != "" {
		merged.Distro = overlay.Distro
	}
	if overlay.Transport != "" {
		merged.Transport = overlay.Transport
	}
	if overlay.Marker != "" {
		merged.Marker = overlay.Marker
	}
	if overlay.TargetMessages != 0 {
		merged.TargetMessages = overlay.TargetMessages
	}
	if overlay.Timeout != 0 {
		merged.Timeout = overlay.Timeout
	}
	if overlay.ProgressInterval != 0 {
		merged.ProgressInterval = overlay.ProgressInterval
	}
	if overlay.TeardownTimeout != 0 {
		merged.TeardownTimeout = overlay.TeardownTimeout
	}
	if overlay.ProjectPrefix != "" {
		merged.ProjectPrefix = overlay.ProjectPrefix
	}

	// Merge compose settings
	if len(overlay.Compose.Command) > 0 {
		merged.Compose.Command = append([]string(nil), overlay.Compose.Command...)
	}
	if len(overlay.Compose.Files) > 0 {
		merged.Compose.Files = append([]string(nil), overlay.Compose.Files...)
	}
	if overlay.Compose.WorkDir != "" {
		merged.Compose.WorkDir = overlay.Compose.WorkDir
	}
	if overlay.Compose.TalkerService != "" {
		merged.Compose.TalkerService = overlay.Compose.TalkerService
	}
	if overlay.Compose.ListenerService != "" {
		merged.Compose.ListenerService = overlay.Compose.ListenerService
	}
	if overlay.Compose.StopGracePeriod != 0 {
		merged.Compose.StopGracePeriod = overlay.Compose.StopGracePeriod
	}

	if len(overlay.BaseImages) > 0 {
		merged.BaseImages = append([]BaseImage(nil), overlay.BaseImages...)
	} else {
		merged.BaseImages = append([]BaseImage(nil), base.BaseImages...)
	}

	return merged
}

// ParseBaseImage parses an "image=label" flag value. Without a label the
// image reference itself is used as the label.
func ParseBaseImage(value string) (BaseImage, error) {
	image, label, found := strings.Cut(value, "=")
	image = strings.TrimSpace(image)
	label = strings.TrimSpace(label)
	if image == "" {
		return BaseImage{}, fmt.Errorf("invalid base image %q: image reference is empty", value)
	}
	if !found {
		label = image
	}
	if label == "" {
		return BaseImage{}, fmt.Errorf("invalid base image %q: label is empty", value)
	}
	return BaseImage{Image: image, Label: label}, nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
