// Package transcript models speaker-labeled utterance lists and merges
// detected laughter instances into them.
//
// Transcripts are stored on disk as JSON arrays of four-element tuples
// [speaker, start, end, text], matching the interchange format used by the
// surrounding transcription tooling. The first entry is a header sentinel
// that merging never reorders or modifies.
package transcript
