// Package transcript turns free-form video text into recipe candidates.
//
// The parser works on two inputs: the combined description/transcript text,
// scanned for ingredients, servings, and cooking time, and the timed cue
// sequence, grouped into step candidates. Everything here is pattern matching
// over fixed lexicons; a miss yields an empty field, never an error, so one
// unparseable aspect of a video cannot block the others.
//
// Step candidates leave this package without an action label; classification
// belongs to the actions package.
package transcript
