// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared helpers for parsing and validating CUE files
// against embedded schemas. It centralizes the compile/unify/validate/decode
// flow and formats CUE errors with JSON-path context for user-facing messages.
package cueutil
