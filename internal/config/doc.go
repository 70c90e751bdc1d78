// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE
// schema validation. Settings describe where the managed Python environment
// lives (interpreter, venv directory, requirements manifest, entrypoint) and
// how the native costing server behaves.
package config
