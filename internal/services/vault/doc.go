// Package vault implements the three read operations on the daemon's
// password store: list all, list filtered, and fetch one entry decrypted.
//
// Responses are AES-GCM envelopes under the session key. Nothing is retried;
// transport, authentication and UTF-8 errors go straight back to the caller.
package vault
