// Package quotes holds the pure quote-list logic: reconciliation against a
// remote set, category derivation and filtering, random selection, and the
// JSON transfer codec. Nothing here performs I/O.
//
// # Reconciliation
//
// Merge applies an incoming set to the local store with server-wins
// semantics:
//
//	result := quotes.Merge(local, incoming)
//	fmt.Println(result.Conflicts, len(result.Quotes))
//
// A record whose non-zero ID matches a local record replaces it entirely and
// counts as a conflict; anything else is appended.
package quotes
