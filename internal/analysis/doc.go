// Package analysis measures the shape of a thresholded field.
//
//   - [Components]: 4-connected inside regions, via gonum graph/topo
//   - [Regions]: the number of visually separate blobs
//   - [Coverage]: the fraction of cells that are inside
//
// # Merge and split
//
// Two sources close together cross the threshold jointly and form one
// region; past a critical separation the region splits in two:
//
//	mask := field.Evaluate(set, w, h).Mask(threshold)
//	if analysis.Regions(mask) > 1 {
//	    // split
//	}
package analysis
