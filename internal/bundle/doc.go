// Package bundle defines the in-memory model of an app bundle: a set of
// named modules, each described by its manifest. Modules are immutable once
// constructed; everything downstream (validation, reporting) treats them as
// read-only values.
package bundle
