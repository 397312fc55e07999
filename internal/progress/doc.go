// Package progress estimates time remaining for a sequential transfer and
// prints human-readable progress lines.
//
// The estimate is a plain linear extrapolation recomputed from scratch for
// every item: the elapsed time scaled by planned bytes over bytes done. No
// smoothing or windowing is applied. Callers own the byte counter and the
// clock and pass both in explicitly.
package progress
