// Package config loads optional configuration files. A file only carries the
// settings it mentions; every field of File is a pointer so that an absent
// setting can be told apart from an explicit zero and left to the defaults
// or to command-line flags.
//
// Two formats are understood, chosen by file extension: HCL (.hcl) and YAML
// (.yaml, .yml). HCL expressions can read environment variables through the
// `env` object and use the min, max and abs functions.
package config
