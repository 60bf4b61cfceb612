// Package naming derives image tags and compose project names from the
// human-readable labels of configured base images.
//
// Every function in this package is pure and deterministic: the same label
// always produces the same slug, tag and project name. Slugging only
// substitutes characters; it does not resolve ambiguity. Labels must be
// chosen so that no two of them slug to the same string, which
// CheckCollisions and config validation enforce.
package naming
