// Package validation certifies a bundle's module set before packaging. It
// checks the declared dependency graph (exactly one base module, consistent
// split IDs, no self, duplicate or dangling references, no cycles, no
// install-time dependency on an on-demand module) and the naming sequence
// of each module's dex containers.
//
// All checks run synchronously over the immutable module set, fail fast on
// the first violation, and keep their working state function-local, so
// independent module sets can be validated concurrently.
package validation
