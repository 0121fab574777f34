// Package backup writes versioned JSON snapshots of everything ladle
// persists: recipes, collections, follows, expenses, and settings. Archives
// land in the configured backup directory under timestamped names and old
// ones are pruned down to the retention count after every run.
//
// A free-space preflight refuses to write when the backup volume is below
// the configured floor, and a snapshot can optionally be mirrored to S3 for
// an offsite copy. Restores are manual: the archive is plain JSON meant to
// be inspected and reloaded with ordinary tools.
package backup
