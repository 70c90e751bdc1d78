// SPDX-License-Identifier: MPL-2.0

// Package pyenv manages the Python side of the app: interpreter discovery on
// PATH, virtual environment creation, and dependency installation from a
// requirements manifest. All steps are sequential and fail-fast; a non-zero
// exit from any external command aborts the remainder with no rollback.
package pyenv
