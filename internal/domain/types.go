package domain

// SessionKeySize is the size of the PAKE-derived AES-256 key.
const SessionKeySize = 32

// SessionKey is the symmetric key agreed during the handshake.
type SessionKey [SessionKeySize]byte

// Slice returns the key as a byte slice sharing the array's storage.
func (k *SessionKey) Slice() []byte { return k[:] }

// Ticket is a base64 envelope carrying the encrypted decimal ticket counter.
type Ticket string

// HandshakeReply is what the daemon answers to the first PAKE message.
type HandshakeReply struct {
	Message []byte // daemon's SPAKE2 message, side byte included
	Ticket  string // base64 envelope of the bootstrap counter
	// HasTicket is false when the daemon sent no ticket header at all.
	HasTicket bool
}

// Entry is one record of the daemon's password database as served over the
// wire. Pass is empty in list responses.
type Entry struct {
	Name      string `json:"name"`
	User      string `json:"user"`
	Pass      string `json:"pass,omitempty"`
	URL       string `json:"url,omitempty"`
	Desc      string `json:"desc,omitempty"`
	Encrypted bool   `json:"encrypted,omitempty"`
}

// Identities are the SPAKE2 domain-separation strings for both roles.
type Identities struct {
	Client string
	Daemon string
}
