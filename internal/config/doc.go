// Package config loads the analysis configuration and the hexadecimal
// input set.
//
// The schema mirrors the command line flags so the same JSON can be kept
// alongside generated artifacts to reproduce a run. The default input set
// is embedded from kh.defaults.json and can be replaced either inline
// ("input") or with a separate file passed to the CLI.
package config
