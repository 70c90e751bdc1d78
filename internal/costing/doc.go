// SPDX-License-Identifier: MPL-2.0

// Package costing implements the dessert-café cost model: per-portion labor
// and ingredient costs, suggested prices, and order quotes. All monetary
// results are rounded to two decimal places at the edges of the model so
// repeated loads of persisted rows reproduce the same numbers.
package costing
