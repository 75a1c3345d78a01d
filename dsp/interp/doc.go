// Package interp provides fractional-position interpolation primitives.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite
//
// [At] wraps Hermite4 with edge clamping for reading whole sample buffers
// at fractional positions, as the audio-clip resampler does.
package interp
