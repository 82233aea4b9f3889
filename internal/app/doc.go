// Package app wires the application together: configuration, logging, the
// manifest loader and the validation run. It owns the process lifecycle
// between argument parsing and the exit code.
package app
