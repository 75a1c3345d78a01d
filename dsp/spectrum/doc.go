// Package spectrum converts complex FFT bins into real magnitude and power
// arrays.
//
// The heavy lifting (per-bin sqrt and squaring) is delegated to
// SIMD-accelerated vector routines; this package only handles the
// complex-to-planar unpacking, with pooled scratch memory.
package spectrum
