// SPDX-License-Identifier: MPL-2.0

// Package config loads treecli configuration with Viper.
//
// The file is either CUE (config.cue) or TOML (config.toml) and is validated
// against the embedded schema in config_schema.cue. The file is taken from
// LoadOptions.ConfigFilePath, then $TREECLI_CONFIG, then the user config
// directory ($XDG_CONFIG_HOME/treecli on Linux), then the base directory.
// Scalar settings can be overridden from the environment with the TREECLI_
// prefix, e.g. TREECLI_LOG_LEVEL=debug or TREECLI_UI_VERBOSE=true.
package config
