// Package paths provides centralized path handling for medialink.
//
// It resolves the locations medialink reads and writes outside the source
// and destination trees:
//
//   - the undo ledger, next to the executable unless ledger.path is set
//   - the config directory, $XDG_CONFIG_HOME/medialink
//   - the state directory holding the log file, $XDG_STATE_HOME/medialink
//
// It also normalizes user supplied paths (~ expansion, absolute, clean).
package paths
