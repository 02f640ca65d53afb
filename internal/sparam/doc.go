// Package sparam enumerates S-parameter labels from ordered excitation lists.
//
// Every function is pure: the result depends only on the arguments, slices
// are never retained or mutated, and a fresh slice is returned on each call.
// Pair order is positional. A name that appears twice in a list is treated as
// two distinct positions, never resolved back to its first occurrence.
//
// Labels are rendered as "S(a,b)" where a and b are excitation names.
package sparam
