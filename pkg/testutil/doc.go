// Package testutil provides utilities for testing medialink components.
//
// Key components:
//   - NewTree: declarative source/destination setup on any types.FS
//   - FaultyFS: types.FS wrapper with per-path error injection
//   - ScriptedPrompter: resolver.Prompter replaying canned answers
//
// Usage guidelines:
//   - Most tests should run against filesystem.NewMemoryFS for speed
//   - Only tests of real hardlink behaviour should touch the OS filesystem
//   - All test data should be defined inline, not in external files
package testutil
