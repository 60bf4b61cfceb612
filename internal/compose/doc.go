// Package compose drives the external container orchestration CLI
// (`docker compose` by default).
//
// The package has two layers. An Executor runs argument vectors as
// subprocesses: Run waits for completion and turns a non-zero exit into a
// *CommandFailedError, Start launches a long-running command and exposes its
// combined output as a Stream that must be terminated by the caller.
// Client builds the compose subcommands used by the matrix (build, up -d,
// down, logs -f) on top of an Executor.
//
// Every invocation receives an Environment: the inherited process
// environment plus the per-call overrides (ROS_DISTRO, BASE_IMAGE_*,
// IMAGE_*, COMPOSE_PROJECT_NAME). Environments are values and are never
// modified after construction.
package compose
