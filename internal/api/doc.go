// Package api defines wire-format types and converters for the HTTP API
// layer. It translates store models into transport-friendly DTOs so
// consumers can render recipes, collections, follows, and expenses without
// coupling to internal types.
//
// # Key Types
//
// RecipeSummary: listing view of a stored recipe (counts and flags, no steps).
//
// RecipeDetail: full record plus the navigation projections (summary,
// chapters, quick jump) clients use to seek inside the video.
//
// CollectionView / FollowView / ExpenseView: transport forms of the CRUD
// entities, with RFC3339 timestamps rendered as strings.
//
// # Converters
//
// FromRecipe / FromRecipeRecord: store.Recipe -> summary or detail DTO; the
// detail converter derives chapters and quick-jump entries from the stored
// steps on every call so the projections always match the record.
//
// FromCollection, FromFollow, FromExpense, FromVideo: plural variants return
// nil for empty input so JSON encodes them compactly.
//
// # Design Notes
//
// DTOs use snake_case JSON tags matching the recipe record and the export
// formats, so an API consumer and an export reader see the same field names.
// Timestamps use RFC3339 with milliseconds. Empty optional fields are
// omitted rather than sent as nulls.
package api
