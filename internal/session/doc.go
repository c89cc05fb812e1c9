// Package session keeps the per-connection session key and the anti-replay
// ticket counter.
//
// A State is either unestablished or holds a key plus counter. Only a
// successful handshake establishes it; Clear (or losing the process) resets
// it and a fresh handshake is required. The counter is never persisted.
//
// NextTicket is the only mutator of the counter. It increments under the
// state lock and returns the new value encrypted with the session key, ready
// to be sent as the ticket request header.
package session
