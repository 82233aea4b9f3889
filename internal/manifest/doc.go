// Package manifest loads a bundle's module manifests from disk and
// materializes them into the bundle model. It owns all file system and HCL
// concerns; the validation core only ever sees the resulting modules.
package manifest
