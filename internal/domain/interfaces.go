package domain

import "context"

// DaemonClient is how we talk to the local password daemon.
type DaemonClient interface {
	// Exchange posts the client's PAKE message and returns the daemon's reply.
	Exchange(ctx context.Context, msg []byte) (HandshakeReply, error)

	// The fetch calls return the raw encrypted response body.
	FetchAll(ctx context.Context, ticket Ticket) ([]byte, error)
	FetchFiltered(ctx context.Context, filter string, ticket Ticket) ([]byte, error)
	FetchDecrypted(ctx context.Context, name string, ticket Ticket) ([]byte, error)
}

// HandshakeService derives a session key and the daemon's bootstrap counter.
type HandshakeService interface {
	Run(ctx context.Context, password string) (SessionKey, uint64, error)
}

// VaultService performs the ticketed, encrypted read operations.
type VaultService interface {
	FetchAll(ctx context.Context) (string, error)
	FetchFiltered(ctx context.Context, filter string) (string, error)
	FetchDecrypted(ctx context.Context, name string) (string, error)
}

// Notifier surfaces user-facing messages to whatever hosts the client.
type Notifier interface {
	Notify(msg string)
}
