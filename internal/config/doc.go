// Package config provides configuration management for ddsmatrix.
//
// This package implements a layered configuration system that allows users to
// customize the interoperability matrix through YAML files. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - The three Humble base images, 10 messages, 30s timeout
//
//  2. User Configuration (~/.config/ddsmatrix/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.ddsmatrix/config.yaml)
//     - Project-specific settings next to the compose descriptor
//
//  4. Explicit file given with --config
//
// Command-line flags are applied on top by the cmd package using Merge.
//
// # Configuration Structure
//
//	distro: humble
//	transport: fastdds
//	marker: "I heard"
//	targetMessages: 10
//	timeout: 30s
//	projectPrefix: dds
//	compose:
//	  command: ["docker", "compose"]
//	  files: ["compose.yaml"]
//	  talkerService: humble_talker
//	  listenerService: humble_listener
//	baseImages:
//	  - image: ros:humble-ros-base
//	    label: ros-base
//	  - image: osrf/ros:humble-desktop
//	    label: desktop
//
// Scalar values override the lower layer when set. The baseImages list is
// replaced as a whole, never merged, because its order defines the order of
// the matrix.
//
// # Validation
//
// Validate rejects configurations whose labels slug to the same string or
// whose derived project names would collide, so that every pair runs in its
// own compose project.
package config
