// Package extraction drives the video-to-recipe pipeline.
//
// Key responsibilities:
//   - Resolving YouTube video IDs from the URL shapes users paste in.
//   - Calling the metadata and transcript collaborators and degrading to a
//     description-only recipe when no transcript is published.
//   - Running the transcript parser and action classifier over the interim
//     output, merging near-duplicate steps, and reconciling description- and
//     transcript-derived ingredients.
//   - Assembling the validated VideoRecipe and its frontend projection.
//
// The pipeline holds no mutable state between calls; extractions for
// different videos may run concurrently on one Extractor.
package extraction
