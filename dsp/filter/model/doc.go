// Package model owns the dual representation of a linear time-invariant
// filter: transfer-function coefficients (b, a) on one side and a
// magnitude response curve on the other.
//
// The two sides are always mutually derived. Setting the coefficients
// evaluates the rational transfer function to refresh the curve; setting
// the curve designs a minimum-phase FIR (denominator [1]) to refresh the
// coefficients. Exactly one side is authoritative per write, and the
// derived side is updated through unexported setters so no recomputation
// cycle can start. Clearing either side clears both.
//
// A [Model] is created at a fixed sample rate and filters only signals at
// that rate.
package model
