// Package version pins the release version shown by the CLI and stamped into
// builds.
package version

// The current bootselect release
const VERSION = "0.1.0"
