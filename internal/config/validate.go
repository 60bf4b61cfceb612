package config

import (
	"fmt"
	"strings"

	"ddsmatrix/internal/naming"
)

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid configuration (%d problems):\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// Validate checks that cfg can drive a matrix run. Besides the basic bounds
// it verifies that every derived image tag and project name is well formed
// and that no two labels or ordered pairs map to the same name.
func Validate(cfg MatrixConfig) error {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if cfg.Distro == "" {
		addf("distro must not be empty")
	}
	if cfg.Transport == "" {
		addf("transport must not be empty")
	}
	if cfg.Marker == "" {
		addf("marker must not be empty")
	}
	if cfg.TargetMessages < 1 {
		addf("targetMessages must be at least 1, got %d", cfg.TargetMessages)
	}
	if cfg.Timeout <= 0 {
		addf("timeout must be positive, got %v", cfg.Timeout)
	}
	if cfg.ProgressInterval <= 0 {
		addf("progressInterval must be positive, got %v", cfg.ProgressInterval)
	}
	if cfg.TeardownTimeout <= 0 {
		addf("teardownTimeout must be positive, got %v", cfg.TeardownTimeout)
	}
	if cfg.ProjectPrefix == "" {
		addf("projectPrefix must not be empty")
	}
	if len(cfg.Compose.Command) == 0 || cfg.Compose.Command[0] == "" {
		addf("compose.command must name an executable")
	}
	if cfg.Compose.StopGracePeriod < 0 {
		addf("compose.stopGracePeriod must not be negative, got %v", cfg.Compose.StopGracePeriod)
	}
	if cfg.TalkerService() == cfg.ListenerService() {
		addf("talker and listener services must differ, both are %q", cfg.TalkerService())
	}

	if len(cfg.BaseImages) == 0 {
		addf("at least one base image must be configured")
	}

	labels := make([]string, 0, len(cfg.BaseImages))
	for i, img := range cfg.BaseImages {
		if img.Image == "" {
			addf("baseImages[%d]: image must not be empty", i)
		}
		if img.Label == "" {
			addf("baseImages[%d]: label must not be empty", i)
			continue
		}
		labels = append(labels, img.Label)

		if cfg.Distro != "" && cfg.Transport != "" {
			if tag := naming.ImageTag(cfg.Distro, cfg.Transport, img.Label); !naming.IsValidName(tag) {
				addf("baseImages[%d]: derived image tag %q is not a valid image name", i, tag)
			}
		}
		if cfg.ProjectPrefix != "" {
			if project := naming.ProjectName(cfg.ProjectPrefix, img.Label, img.Label); !naming.IsValidName(project) {
				addf("baseImages[%d]: derived project name %q is not a valid compose project name", i, project)
			}
		}
	}

	collisions := naming.CheckCollisions(labels)
	for _, c := range collisions {
		addf("%s", c)
	}

	// Slugs joined with the separator can still collide across pairs,
	// e.g. ("a-b", "c") and ("a", "b-c").
	if cfg.ProjectPrefix != "" && len(collisions) == 0 {
		owners := make(map[string]string)
		for _, talker := range labels {
			for _, listener := range labels {
				project := naming.ProjectName(cfg.ProjectPrefix, talker, listener)
				pair := fmt.Sprintf("(%s, %s)", talker, listener)
				if prev, dup := owners[project]; dup && prev != pair {
					addf("pairs %s and %s share project name %q", prev, pair, project)
					continue
				}
				owners[project] = pair
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
