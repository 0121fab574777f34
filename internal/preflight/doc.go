// Package preflight provides readiness checks for the directories and
// external endpoints that ladle depends on.
//
// These checks run in two contexts:
//   - "ladle serve" runs RunAll once at startup and logs each result, so a
//     missing data directory or unreachable ntfy endpoint shows up in the
//     log before the first request does.
//   - The CLI "ladle config validate" command prints the same results so a
//     host can be verified without starting the server.
//
// Each check is gated by its config toggle -- disabled features are skipped.
// Failures never abort startup; the server degrades the affected routes
// instead.
package preflight
