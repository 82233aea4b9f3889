// Package cli translates command-line arguments into an app.Config. It has
// no knowledge of what the application does with the configuration.
package cli
