// Package devdaemon is an in-process stand-in for the password daemon, used
// by cmd/devdaemon and by tests.
//
// HTTP API
//
//	POST /pake
//	    SPAKE2 side B. Replies with the daemon message and, if configured,
//	    an encrypted bootstrap counter in the ticket header.
//
//	GET /entries[?filter=F]
//	    Sealed JSON list of entries (passwords blanked), optionally
//	    restricted to names containing F, case-insensitive.
//
//	GET /decrypted/{name}
//	    Sealed JSON of a single entry, password included.
//
// Behaviour
//
//   - Every GET must carry a ticket that decrypts to a counter above the
//     last one accepted. Replays and out-of-order tickets get 401.
//   - A new handshake replaces the session key and reseeds the counter.
//   - Response bodies are binary envelopes, not base64.
//
// It is not the real daemon and is meant for local use only.
package devdaemon
