// Package handshake derives a session key with the daemon.
//
// It runs SPAKE2 as the client role, posts the first message to the daemon's
// exchange endpoint and decodes the optional bootstrap ticket. A missing or
// undecodable bootstrap ticket starts the counter at zero so that a daemon
// with no ticket history can still be reached.
package handshake
