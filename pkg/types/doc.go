// Package types defines the core types and interfaces shared across
// medialink: the FS abstraction the engine performs its primitives through
// and the discovery items the planner consumes.
package types
