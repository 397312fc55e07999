// Package rendition picks, for every video, the download variant closest to a
// requested quality and turns the picks into a transfer plan.
//
// A quality label such as "1080p" orders by its numeric prefix; labels with no
// number ("auto", "") order as 0. Matching a target tries, in order:
//
//   - an exact key match,
//   - the highest key below the target,
//   - the lowest key above the target.
//
// A video with no variants at all has no match and cannot be planned.
package rendition
