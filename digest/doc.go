// Package digest assembles the aggregated views into the one JSON
// document the dashboard reads. It performs no computation of its own
// beyond structural assembly, month alignment and deterministic
// ordering of ranked lists.
package digest
