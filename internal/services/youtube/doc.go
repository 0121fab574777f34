// Package youtube provides the minimal YouTube Data API client used during
// recipe extraction.
//
// It fetches video snippets and content details with an API key and flattens
// them into the metadata the extractor needs: title, channel, duration, tags,
// and the best available thumbnail. Options allow tests to point the client at
// a stub endpoint without modifying production code.
package youtube
