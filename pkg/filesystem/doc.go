// Package filesystem provides filesystem implementations for medialink.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed filesystem used
// by tests, plus the hardlink helper that classifies creation failures.
package filesystem
