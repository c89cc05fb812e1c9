package spake2

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/hkdf"

	"keylink/internal/util/memzero"
)

const (
	// ElementBytes is the size of a compressed Ed25519 point.
	ElementBytes = 32
	// MessageBytes is the size of a SPAKE2 message: side byte plus element.
	MessageBytes = ElementBytes + 1
	// KeyBytes is the size of the derived shared key.
	KeyBytes = sha256.Size
)

// Side tags the role a message was produced by.
type Side byte

const (
	SideA Side = 0x41 // 'A', the client
	SideB Side = 0x42 // 'B', the daemon
)

var (
	ErrWrongLength    = errors.New("spake2: message has wrong length")
	ErrBadSide        = errors.New("spake2: message from unexpected side")
	ErrCorruptMessage = errors.New("spake2: message is not a curve point")
	ErrFinished       = errors.New("spake2: exchange already finished")
)

// Blinding points for the two sides.
var (
	pointM = mustPoint("15cfd18e385952982b6a8f8c7854963b58e34388c8e6dae891db756481a02312")
	pointN = mustPoint("f04f2e7eb734b2a8f8b472eaf9c3c632576ac64aea650b496a8a20ff00e583c3")
)

func mustPoint(h string) *edwards25519.Point {
	b, err := hex.DecodeString(h)
	if err != nil {
		panic(err)
	}
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		panic(err)
	}
	return p
}

// State is one side's transcript between Start and Finish.
type State struct {
	side     Side
	xy       *edwards25519.Scalar
	pw       *edwards25519.Scalar
	password []byte
	idA, idB []byte
	msg      [ElementBytes]byte
	done     bool
}

// StartA begins the exchange as side A and returns the message to send.
func StartA(password, idA, idB []byte) (*State, []byte, error) {
	return start(SideA, password, idA, idB, rand.Reader)
}

// StartB begins the exchange as side B and returns the message to send.
func StartB(password, idA, idB []byte) (*State, []byte, error) {
	return start(SideB, password, idA, idB, rand.Reader)
}

func start(side Side, password, idA, idB []byte, r io.Reader) (*State, []byte, error) {
	xy, err := randomScalar(r)
	if err != nil {
		return nil, nil, err
	}
	pw, err := passwordScalar(password)
	if err != nil {
		return nil, nil, err
	}

	// A: X = x*B + pw*M, B: Y = y*B + pw*N
	blind := pointM
	if side == SideB {
		blind = pointN
	}
	elem := new(edwards25519.Point).ScalarBaseMult(xy)
	elem.Add(elem, new(edwards25519.Point).ScalarMult(pw, blind))

	s := &State{
		side:     side,
		xy:       xy,
		pw:       pw,
		password: append([]byte(nil), password...),
		idA:      append([]byte(nil), idA...),
		idB:      append([]byte(nil), idB...),
	}
	copy(s.msg[:], elem.Bytes())

	out := make([]byte, 0, MessageBytes)
	out = append(out, byte(side))
	out = append(out, s.msg[:]...)
	return s, out, nil
}

// Finish consumes the peer's message and returns the shared key. The
// transcript is wiped whether or not it succeeds.
//
// A different password or identity on the other side is not detected here:
// both sides simply end up with different keys.
func (s *State) Finish(inbound []byte) ([]byte, error) {
	if s.done {
		return nil, ErrFinished
	}
	defer s.wipe()

	if len(inbound) != MessageBytes {
		return nil, ErrWrongLength
	}
	want, unblind := SideB, pointN
	if s.side == SideB {
		want, unblind = SideA, pointM
	}
	if Side(inbound[0]) != want {
		return nil, ErrBadSide
	}
	peer, err := new(edwards25519.Point).SetBytes(inbound[1:])
	if err != nil {
		return nil, ErrCorruptMessage
	}

	// K = (peer - pw*unblind) * xy
	negPw := edwards25519.NewScalar().Negate(s.pw)
	k := new(edwards25519.Point).ScalarMult(negPw, unblind)
	k.Add(peer, k)
	k.ScalarMult(s.xy, k)

	first, second := s.msg[:], inbound[1:]
	if s.side == SideB {
		first, second = inbound[1:], s.msg[:]
	}
	return transcriptKey(s.password, s.idA, s.idB, first, second, k.Bytes()), nil
}

func (s *State) wipe() {
	s.done = true
	memzero.All(s.password, s.msg[:])
	s.xy.Set(edwards25519.NewScalar())
	s.pw.Set(edwards25519.NewScalar())
}

// transcriptKey is SHA256(H(pw) || H(idA) || H(idB) || X || Y || K).
func transcriptKey(password, idA, idB, first, second, k []byte) []byte {
	var transcript [6 * 32]byte
	h := sha256.Sum256(password)
	copy(transcript[0:32], h[:])
	h = sha256.Sum256(idA)
	copy(transcript[32:64], h[:])
	h = sha256.Sum256(idB)
	copy(transcript[64:96], h[:])
	copy(transcript[96:128], first)
	copy(transcript[128:160], second)
	copy(transcript[160:192], k)
	sum := sha256.Sum256(transcript[:])
	memzero.Zero(transcript[:])
	return sum[:]
}

// passwordScalar expands the password with HKDF-SHA256 (empty salt, info
// "SPAKE2 pw") to 48 bytes, reads them as a big-endian integer and reduces
// it modulo the group order.
func passwordScalar(password []byte) (*edwards25519.Scalar, error) {
	var okm [ElementBytes + 16]byte
	if _, err := io.ReadFull(hkdf.New(sha256.New, password, []byte{}, []byte("SPAKE2 pw")), okm[:]); err != nil {
		return nil, err
	}
	var wide [64]byte
	for i, b := range okm {
		wide[len(okm)-1-i] = b
	}
	defer memzero.All(okm[:], wide[:])
	return edwards25519.NewScalar().SetUniformBytes(wide[:])
}

func randomScalar(r io.Reader) (*edwards25519.Scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(r, wide[:]); err != nil {
		return nil, err
	}
	defer memzero.Zero(wide[:])
	return edwards25519.NewScalar().SetUniformBytes(wide[:])
}
