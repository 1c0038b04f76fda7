package domain

import (
	"bytes"
	"crypto/ed25519"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"

	dErrors "hubrwa/pkg/domain-errors"
)

// AddressLength is the byte length of an account address (an ed25519 public key).
const AddressLength = ed25519.PublicKeySize

// derivationMarker separates derived addresses from any other blake2b usage.
var derivationMarker = []byte("HubDerivedAddress")

// Address identifies a wallet or a ledger account. Wallet addresses are ed25519
// public keys; derived account addresses are guaranteed to lie off the curve so
// no private key can ever sign for them.
type Address [AddressLength]byte

// ParseAddress decodes the base58 text form of an address.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is required")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "address is not valid base58")
	}
	if len(raw) != AddressLength {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must decode to 32 bytes")
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

// MustParseAddress is ParseAddress for compile-time constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromPublicKey converts an ed25519 public key to an Address.
func AddressFromPublicKey(pub ed25519.PublicKey) (Address, error) {
	if len(pub) != AddressLength {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "public key must be 32 bytes")
	}
	var a Address
	copy(a[:], pub)
	return a, nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// PublicKey returns the address as an ed25519 verification key.
func (a Address) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(bytes.Clone(a[:]))
}

// Compare orders addresses bytewise; used to acquire account locks in a stable order.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Derive computes the account address for a seed list. Nonces are tried from 255
// downward; the first candidate that is not a valid curve point wins, and the
// nonce is returned so it can be stored alongside the account.
func Derive(seeds ...[]byte) (Address, uint8) {
	for nonce := 255; nonce >= 0; nonce-- {
		h, _ := blake2b.New256(nil)
		for _, seed := range seeds {
			h.Write(seed)
		}
		h.Write([]byte{byte(nonce)})
		h.Write(derivationMarker)

		var candidate Address
		copy(candidate[:], h.Sum(nil))
		if !onCurve(candidate) {
			return candidate, uint8(nonce)
		}
	}
	// Every one of 256 hashes landing on the curve has probability ~2^-256.
	panic("domain: no off-curve nonce for seeds")
}

// IsDerived reports whether a is not a usable ed25519 public key.
func (a Address) IsDerived() bool {
	return !onCurve(a)
}

func onCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}
