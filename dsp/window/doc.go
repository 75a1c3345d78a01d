// Package window generates window-function coefficients for block-based
// spectral synthesis.
//
// The spectrum-playback source uses periodic Hann windows for its
// overlap-add frames; the remaining types are provided for callers that
// taper analysis blocks before an FFT.
package window
