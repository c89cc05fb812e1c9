// Package spake2 implements the two-message SPAKE2 exchange over the Ed25519
// group, wire compatible with the daemon's SPAKE2 implementation.
//
// # Overview
//
// Both sides know the same password and a pair of identity strings. Each
// side sends one 33-byte message and derives the same 32-byte key, without
// the password ever crossing the wire.
//
// # Flows
//
// Side A (client):
//  1. pw = HKDF-SHA256(password, info "SPAKE2 pw") reduced mod l.
//  2. Pick random x, send 'A' || (x*B + pw*M).
//  3. On 'B' || Y, compute K = x*(Y - pw*N).
//
// Side B (daemon) mirrors this with y, N and M swapped.
//
// Both derive
//
//	SHA256(SHA256(pw) || SHA256(idA) || SHA256(idB) || X || Y || K)
//
// # Errors
//
// Finish returns ErrWrongLength, ErrBadSide or ErrCorruptMessage for
// malformed input, and ErrFinished on reuse. A password or identity mismatch
// is not an error: the keys just differ.
//
// # Security notes
//
// The transcript (scalars, password copy, own message) is wiped once Finish
// returns. There is no key confirmation step in this exchange.
package spake2
