// Package source provides the signal generators a track can play:
// spectrum playback, broadband noise (plain and level-controlled),
// harmonic stacks (fixed and swept), and stored audio clips.
//
// Every variant implements [Source]: it renders a fresh time-domain signal
// at whatever sample rate is requested, with a duration owned by the
// variant itself. Noise-like variants carry an explicit seed so repeated
// generation is bit-identical. The [Type] tags are part of the project
// file format and must not be renumbered.
package source
