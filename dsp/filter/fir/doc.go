// Package fir provides a direct-form FIR filter runtime.
//
// A [Filter] applies a set of pre-computed coefficients to an input stream
// using a circular-buffer delay line. The filter model dispatches its
// pure-FIR filtering here; the noise source uses it to shape white noise
// with minimum-phase kernels.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design/minphase.
package fir
