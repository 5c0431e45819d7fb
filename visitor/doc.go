// Package visitor offers visitors over Go containers used to build serialized arrays.
// Structs are walked with xunsafe using format tag names, maps are visited in sorted
// key order so that encoding is deterministic.
package visitor
