// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read optimized projections straight from
// PostgreSQL through raw SQL; every aggregation is scoped to the caller.
package queries
