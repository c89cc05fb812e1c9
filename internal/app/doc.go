// Package app wires keylink's dependencies and exposes the Client handle.
//
// It builds the HTTP transport, session state, handshake and vault services
// from Config, which can be read from a TOML file. Hosts (the CLI) talk only
// to Client: Connect, Reset and the three fetch operations.
package app
