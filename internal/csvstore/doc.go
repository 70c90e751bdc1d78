// SPDX-License-Identifier: MPL-2.0

// Package csvstore persists the costing records as CSV files in the project
// data directory. The file names and headers are the Traditional Chinese ones
// the café staff already edit in Excel, so files are written as UTF-8 with a
// BOM (Excel needs it to pick the right encoding) and reads fall back to Big5
// for files an older Excel saved.
package csvstore
