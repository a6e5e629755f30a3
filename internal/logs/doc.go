// Package logs reads the daemon's JSON log file for the CLI.
//
// Read returns the last N lines or everything after a byte offset; Follow
// polls for appended lines until the context ends. Filters select records by
// minimum level or component without loading the whole file.
package logs
