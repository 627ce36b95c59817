// Package vlog provides opt-in, file-based structured logging for vettore.
//
// The core engine itself never requires logging to function; by default a
// collection's logger is a no-op discard handler. Callers that want
// visibility into record inserts and removals call Setup to install a
// JSON-structured *slog.Logger, optionally with size-based file rotation.
// The HNSW graph itself does not log.
package vlog
