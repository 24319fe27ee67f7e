// Package cli parses command-line arguments for the gridastar binaries and
// folds them over the HCL configuration. Flags given explicitly win over the
// file; everything else comes from the file or its defaults.
package cli
