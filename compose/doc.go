// Package compose chains sources, filters, and gains into tracks and sums
// tracks into one output signal.
//
// A [Track] renders its source at a requested sample rate, optionally runs
// the result through a filter model, and applies a scalar gain. A
// [Composer] processes its tracks in insertion order and stores their
// element-wise sum; the order is fixed so repeated renders are
// bit-identical despite float rounding.
//
// Projects persist as YAML: the composer name plus one record per track
// (name, gain, source type tag, parameter and control blobs, and the
// filter's response curve). [Composer.Save] and [Load] round-trip this
// exactly.
//
// Output accessors return ok=false instead of failing when nothing has
// been processed yet.
package compose
