// Package conv provides checked integer conversions between the uint64 index
// space of huge arrays and Go's platform-sized int.
//
// Indices and sizes are uint64 throughout the module; slices, page counts and
// memory reservations need int or int64. The helpers here fail (or saturate)
// instead of silently wrapping.
package conv
