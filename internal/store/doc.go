// Package store persists extracted recipes and their surrounding household
// data in SQLite.
//
// The Store manages database connections, schema initialization, and CRUD for
// recipes, collections, followed channels, grocery expenses, and key/value
// settings. Recipe rows keep the full extraction record as JSON next to a few
// indexed columns so list and search queries never have to unmarshal.
//
// Unlike a cache, this database is the long-term archive of everything the
// user has extracted. Schema changes bump the version in schema.go; the
// backup package exists so that bump never has to cost data.
//
// Treat this package as the single source of truth for persistence semantics;
// when you add new entities or columns, update schema.sql and bump
// schemaVersion.
package store
