// Package signal defines the Signal value type shared by sources, filters,
// and the composition layer: a sample block tagged with its sample rate.
//
// Signals are passed by value; the sample slice inside is owned by whoever
// produced it. Operations that change samples (gain, summation) return a
// fresh Signal rather than mutating their input.
package signal
