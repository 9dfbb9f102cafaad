// Package metrics exposes reconciliation counters in the prometheus text format.
package metrics
