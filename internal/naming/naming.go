package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Separator replaces characters that are unsafe in image references and
// project names.
const Separator = "-"

var slugReplacer = strings.NewReplacer(":", Separator, "/", Separator)

// validName matches what compose accepts as a project name and what docker
// accepts as a local image repository name.
var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// Slug replaces ':' and '/' in label with '-'.
func Slug(label string) string {
	return slugReplacer.Replace(label)
}

// ImageTag returns the tag shared by the talker and listener images built
// from the base image with the given label.
func ImageTag(distro, transport, label string) string {
	return fmt.Sprintf("ros2-%s-%s-%s", distro, transport, Slug(label))
}

// ProjectName returns the compose project name isolating the containers and
// networks of one (talker, listener) pair.
func ProjectName(prefix, talkerLabel, listenerLabel string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, Slug(talkerLabel), Slug(listenerLabel))
}

// IsValidName reports whether name can be used as a compose project name
// or a local image name.
func IsValidName(name string) bool {
	return validName.MatchString(name)
}

// Collision describes labels that map to the same slug.
type Collision struct {
	Slug   string
	Labels []string
}

func (c Collision) String() string {
	return fmt.Sprintf("labels %s all slug to %q", strings.Join(quoteAll(c.Labels), ", "), c.Slug)
}

// CheckCollisions returns every slug shared by more than one distinct label,
// in the order the slug first appears in labels. Repeating the same label is
// reported as well since it would reuse the same images and projects.
func CheckCollisions(labels []string) []Collision {
	bySlug := make(map[string][]string)
	var order []string
	for _, label := range labels {
		s := Slug(label)
		if _, seen := bySlug[s]; !seen {
			order = append(order, s)
		}
		bySlug[s] = append(bySlug[s], label)
	}

	var collisions []Collision
	for _, s := range order {
		if len(bySlug[s]) > 1 {
			collisions = append(collisions, Collision{Slug: s, Labels: bySlug[s]})
		}
	}
	return collisions
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
