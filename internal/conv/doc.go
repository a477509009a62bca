// Package conv provides overflow-checked integer arithmetic and conversions.
//
// Keys, segment bounds and range lengths all live in the uint64 domain. Any
// computation that could leave that domain (segment ends, the last key of a
// range, destination shifts) goes through this package so that wraparound is
// reported as an error instead of silently producing a wrong mapping.
//
// For arithmetic that is provably safe by construction (e.g. shifting a key
// that was already validated against its segment bounds), use plain operators
// to avoid the overhead.
package conv
