// Package minphase designs minimum-phase FIR filters from magnitude-only
// frequency-response curves.
//
// Given a curve of (frequency, dB) points, [FIR] returns a causal, stable
// kernel whose magnitude response follows the curve and whose phase is the
// unique minimum-phase response for that magnitude. The construction is
// homomorphic: take the real cepstrum of the log-magnitude spectrum, fold
// its anti-causal half onto the causal half, and exponentiate back.
//
// Only the magnitude is controlled; callers that need a specific phase
// response cannot use this designer.
package minphase
