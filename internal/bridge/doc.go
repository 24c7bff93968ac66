// Package bridge manages the external discovery helper process and its
// line-oriented IPC protocol.
//
// Multicast-DNS scanner discovery is delegated to a helper process rather
// than performed in-process. The bridge owns the helper's lifecycle: it
// spawns the helper, exchanges newline-delimited JSON over its standard
// streams, and guarantees the process is torn down on every exit path.
//
// # Wire Protocol
//
// Outbound commands, one JSON value per line on the helper's stdin:
//
//	{"action":"list"}
//	{"action":"exit"}
//
// Inbound messages on the helper's stdout:
//
//	{"success":true,"scanners":[{"name":"...","host":"...","port":80}, ...]}
//	{"success":false,"error":"..."}
//
// A success message carries the helper's full current device set, not a
// delta, and replaces the bridge's registry wholesale. Error messages are
// logged and skipped; malformed lines are skipped without aborting the
// stream.
//
// # Backends
//
// Two helper backends exist, selected once at construction by probing the
// filesystem: a prebuilt executable (preferred, no interpreter needed) or an
// interpreted script run through an externally supplied interpreter. Failing
// to resolve either is a startup error, not a discovery error.
//
// # Resolution
//
// Discover resolves on whichever happens first: the timeout expiring or the
// first successful helper response arriving. On the first response the
// helper is shut down immediately, so devices that would have announced
// later in the same window are not observed. This truncation is a known
// property of the protocol and is kept deliberately rather than widened.
package bridge
