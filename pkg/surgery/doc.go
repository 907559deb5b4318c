// Package surgery plans structural rewrites of a linear revision chain:
// moving a revision to another position and squashing two adjacent revisions
// into one.
//
// Planning is pure. Move returns the parent pointer edits to apply and Squash
// returns the text of the merged revision along with the scripts it replaces;
// writing files and archiving the originals is left to the caller.
package surgery
