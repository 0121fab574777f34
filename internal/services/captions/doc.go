// Package captions provides the timedtext client used to download video
// transcripts during recipe extraction.
//
// It lists the caption tracks published for a video, picks the best match for
// the caller's language preferences (manual tracks beat auto-generated ones),
// and converts the timed XML payload into plain cues. Options allow tests to
// supply custom HTTP clients or stub endpoints without modifying production
// code.
package captions
