// Package store provides entry sources for the development daemon.
//
// EntryFileStore serialises entries as JSON on disk, writing through a temp
// file and rename. The sealed variant wraps that JSON in a
// scrypt/ChaCha20-Poly1305 envelope keyed by a passphrase:
//
//	{"v":1,"salt":...,"scrypt_N":...,"scrypt_r":...,"scrypt_p":...,"cipher":...}
//
// Memory is a fixed list for tests. All are safe for concurrent use.
package store
