package domain

import "errors"

// Session lifecycle.
var (
	ErrSessionNotEstablished = errors.New("session key is not established yet")
	ErrWrongPassword         = errors.New("session key rejected by daemon, wrong password?")
)

// Handshake.
var (
	ErrHandshakeTransport = errors.New("handshake transport failure")
	ErrHandshakeProtocol  = errors.New("handshake protocol failure")

	// ErrMalformedBootstrapTicket is never returned to callers. The handshake
	// logs it and starts the ticket counter at zero.
	ErrMalformedBootstrapTicket = errors.New("malformed bootstrap ticket")
)

// Requests and envelopes.
var (
	ErrTransport        = errors.New("transport failure")
	ErrUnauthorized     = errors.New("daemon rejected the request")
	ErrEnvelopeTooShort = errors.New("unexpected bytes to decrypt: envelope too short")
	ErrAuthentication   = errors.New("envelope authentication failed")
	ErrTextDecoding     = errors.New("payload is not valid UTF-8")
	ErrBase64           = errors.New("malformed base64")
)
