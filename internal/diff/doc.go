// Package diff computes minimal edit scripts between two sequences.
//
// The engine is the textbook Levenshtein dynamic program: an (m+1)×(n+1)
// cost table followed by a backtrack from the bottom-right corner. There is
// no Myers-style optimisation; both time and space are O(m·n), which is fine
// for the list sizes this module synchronizes.
//
// # Edit Order
//
// Compute emits edits from the end of the sequences toward the start. Indices
// always refer to positions in the source sequence:
//
//	source: [1 5 3 2]
//	target: [1 3 2 6 6]
//
//	Compute(source, target) =
//	  INSERT 6 at 4
//	  INSERT 6 at 4
//	  DELETE 5 at 1
//
// Two replay strategies produce the target from the source:
//
//   - Emission order, no shifting (Patch, one edit at a time). Each edit only
//     touches positions at or beyond those the remaining edits address.
//   - Reverse emission order with an offset of inserts minus deletes applied
//     so far (Apply).
//
// # Tie Breaking
//
// When several minimal scripts exist, the backtrack prefers, in order: an
// insertion strictly cheaper than both alternatives, a deletion strictly
// cheaper than both, a match, and a substitution. The order is fixed so the
// same inputs always produce the same script.
//
// The functions in this package keep no state and are safe for concurrent use.
package diff
