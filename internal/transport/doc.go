// Package transport provides the HTTP implementation of the
// domain.DaemonClient interface used by keylink.
//
// The daemon listens on loopback (http://127.0.0.1:9876 by default) and
// exposes:
//   - POST /pake: raw SPAKE2 message in, raw SPAKE2 message out, plus an
//     optional "ticket" response header with the bootstrap counter.
//   - GET /entries[?filter=F]: encrypted entry list.
//   - GET /decrypted/{name}: encrypted single entry.
//
// Read requests carry the ticket request header. Response bodies are
// returned untouched; decryption belongs to the caller.
//
// All requests accept a context for cancellation and deadlines. Non-2xx
// statuses and network failures are returned wrapping domain.ErrTransport,
// with the HTTP method, full URL and status text to aid diagnostics. 401 and
// 403 also match domain.ErrUnauthorized.
package transport
