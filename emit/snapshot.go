package emit

import (
	"github.com/dekarrin/rezi"

	"github.com/dekarrin/parsegen/icerrors"
)

// Snapshot serializes exp to a deterministic byte stream with rezi: the
// `--cache` round-trip and the mechanism invariant I-6 ("same input ⇒
// byte-identical emitter export") is tested against.
func Snapshot(exp Export) ([]byte, error) {
	data, err := rezi.Enc(exp)
	if err != nil {
		return nil, &icerrors.IOFailureError{Path: "<snapshot>", Cause: err}
	}
	return data, nil
}

// LoadSnapshot restores an Export previously produced by Snapshot.
func LoadSnapshot(data []byte) (Export, error) {
	var exp Export
	if _, err := rezi.Dec(data, &exp); err != nil {
		return Export{}, &icerrors.IOFailureError{Path: "<snapshot>", Cause: err}
	}
	return exp, nil
}
