// SPDX-License-Identifier: MPL-2.0

// Package config loads the manualhub configuration.
//
// The pipeline configuration (directories, feed URLs, development flags)
// comes from config.toml via viper with MANUALHUB_* environment overrides.
// The site display/filter/selectable configuration that ends up embedded in
// the generated bootstrap script has built-in defaults and an optional
// TOML override file.
package config
