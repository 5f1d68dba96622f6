package group

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
)

type parametersMarshal struct {
	P, Q, G, H *saferith.Nat
}

// MarshalBinary implements encoding.BinaryMarshaler using CBOR.
func (pp *Parameters) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&parametersMarshal{
		P: pp.p.Nat(),
		Q: pp.q.Nat(),
		G: pp.g,
		H: pp.h,
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The decoded values go through the same validation as New, so a successfully
// decoded Parameters is always usable.
func (pp *Parameters) UnmarshalBinary(data []byte) error {
	var pm parametersMarshal
	if err := cbor.Unmarshal(data, &pm); err != nil {
		return fmt.Errorf("group: %w", err)
	}
	validated, err := New(pm.P, pm.Q, pm.G, pm.H)
	if err != nil {
		return err
	}
	*pp = *validated
	return nil
}
