// SPDX-License-Identifier: MPL-2.0

// Package launcher starts the Streamlit application and arbitrary commands
// inside an existing virtual environment. It owns the activation-equivalent
// environment wiring and surfaces the child's exit code unchanged, so shell
// callers and CI can branch on it.
package launcher
