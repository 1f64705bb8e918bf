// Package pipeline runs one batch of aligned sequences through every
// analysis stage: consensus, region classification, interval filtering,
// context uniqueness and hotspot aggregation.
//
// Stages are built once from a validated config.Config and are pure; a
// Pipeline may run many batches, concurrently if needed.
package pipeline
