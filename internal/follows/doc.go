// Package follows watches the upload feeds of subscribed YouTube channels.
//
// YouTube publishes an Atom feed of recent uploads per channel; no API quota
// is spent reading it. The Service fetches and maps those feeds for the
// follows API surface and runs the periodic new-video check that drives push
// notifications. A channel's first check only records the poll marker so a
// fresh subscription does not replay its whole backlog as "new".
package follows
