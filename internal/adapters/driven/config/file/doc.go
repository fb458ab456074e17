// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//
// Settings materialisation for the curation services also lives here:
// SettingsFromConfig reads the curation keys out of a ConfigStore and
// applies defaults.
package file
