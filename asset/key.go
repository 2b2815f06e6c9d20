package asset

import (
	"unicode/utf8"

	"github.com/duet-dlt/duet/chain"
	"golang.org/x/xerrors"
)

// Key returns the canonical storage key of the info. The key is the kind
// byte followed by the raw bytes of the identifier, so that an ordered store
// keeps all contract keys in one block and all native keys in another.
func (i Info) Key() []byte {
	payload := i.String()

	key := make([]byte, 1+len(payload))
	key[0] = byte(i.kind)
	copy(key[1:], payload)

	return key
}

// DecodeKey returns the info encoded in the key. The key must carry one of
// the two kind bytes and a non-empty UTF-8 payload. Keys are only ever
// produced from checked infos, so the decoded contract address is trusted
// without going through validation again.
func DecodeKey(key []byte) (Info, error) {
	if len(key) < 2 {
		return Info{}, xerrors.Errorf("key of length %d is too short: %w", len(key), ErrMalformedKey)
	}

	payload := key[1:]
	if !utf8.Valid(payload) {
		return Info{}, xerrors.Errorf("payload is not valid utf-8: %w", ErrMalformedKey)
	}

	switch Kind(key[0]) {
	case KindNative:
		return NewNativeInfo(string(payload)), nil
	case KindContract:
		return NewContractInfo(chain.AddressUnchecked(string(payload))), nil
	default:
		return Info{}, xerrors.Errorf("unknown kind 0x%02x: %w", key[0], ErrMalformedKey)
	}
}
