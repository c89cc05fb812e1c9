// Package commands defines the keylink CLI and wires dependencies for subcommands.
//
// Commands
//
//   - list     Print entry names, optionally filtered by --filter
//   - get      Print one entry including its password
//   - shell    Interactive session; one handshake serves every command
//
// # Implementation
//
// The root command loads the TOML config, applies flag overrides, builds the
// logger and the client before any subcommand runs. One-shot commands
// connect first and exit afterwards, so every invocation runs its own
// handshake. The shell keeps the session until reset or quit.
package commands
