// Package main runs a development stand-in for the rust-keylock daemon so the
// keylink client can be exercised without a real vault.
//
// HTTP API
//
//	POST /pake
//	    Body is the client's SPAKE2 message; the reply body is the daemon's.
//	    With --bootstrap set, the "ticket" header carries that value
//	    encrypted under the new session key.
//
//	GET /entries[?filter=text]
//	    Encrypted JSON list of entries, passwords blanked. The filter is a
//	    case-insensitive substring match on the name.
//
//	GET /decrypted/{name}
//	    Encrypted JSON of one entry including its password.
//
// Every GET needs a "ticket" header: an encrypted decimal counter strictly
// greater than the last one accepted. Anything else is answered with 401.
//
// Behaviour
//
//   - Entries live in entries.sealed under --dir, encrypted with a scrypt key
//     derived from --password (entries.json with --plain). They are seeded
//     with samples when the file is missing or empty.
//   - Only the most recent handshake's key is honoured.
//   - The default listen address is 127.0.0.1:9876.
package main
