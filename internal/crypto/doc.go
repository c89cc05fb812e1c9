// Package crypto holds the envelope codec used on the keylink channel.
//
// Contents
//
//   - AES-256-GCM sealing with a fresh random 12-byte nonce per message
//     (Seal, Encrypt)
//   - Opening of nonce-prefixed envelopes, binary or base64 (Decrypt,
//     DecryptText)
//   - Standard base64 text encoding without line wrapping (B64, UnB64)
//
// # Envelope
//
//	nonce (12 bytes) || ciphertext || GCM tag (16 bytes)
//
// Anything of 12 bytes or less is rejected with domain.ErrEnvelopeTooShort.
// A tag mismatch (wrong key, corruption or tampering) is reported as
// domain.ErrAuthentication and nothing of the payload is returned.
//
// # Notes
//
// Nonces are random rather than counter based because the client keeps no
// durable state between runs. The algorithm is fixed by the daemon.
package crypto
