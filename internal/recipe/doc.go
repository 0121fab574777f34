// Package recipe defines the value records produced by the video extraction
// pipeline.
//
// Cues are the raw transcript fragments supplied by the captions service,
// Steps are classified cooking actions anchored to a moment in the video, and
// VideoRecipe is the assembled record returned to callers. A Step carries both
// a rendered HH:MM:SS timestamp and the equivalent second offset; constructors
// keep the two in agreement and clamp confidence scores so downstream
// consumers never see an out-of-range record.
package recipe
