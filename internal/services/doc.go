// Package services defines shared utilities consumed by the extraction
// pipeline and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, recipe IDs, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent outcomes (caller mistakes vs upstream trouble).
//
// Use these helpers when wiring new integrations so operational behaviour
// (error handling, observability, retries) stays uniform across the pipeline.
package services
