// Package notifications delivers recipe events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Enumerated event types cover the milestones worth a push
// (extraction results, backups, new uploads from followed channels) so
// callers can emit consistent messages without duplicating HTTP glue. Each
// event class can be switched off individually in config.
//
// Extend this package if you need alternative transports; all callers depend
// only on the simple Service interface.
package notifications
