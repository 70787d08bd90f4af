// Package match ranks known names by their similarity to a name that did
// not resolve, so errors can suggest what was probably meant.
//
// Names are compared after normalization: case folding and removal of
// separators, so "shared.container", "Shared.Container" and
// "shared_container" are the same name. Similarity is the normalized
// Levenshtein distance.
package match
