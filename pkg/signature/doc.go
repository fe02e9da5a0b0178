// Package signature turns drawn or uploaded signature images into PNG bytes
// ready for the PDF canvas and computes the box they are drawn into.
package signature
