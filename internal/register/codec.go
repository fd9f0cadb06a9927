package register

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("register: building cbor encoder: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("register: building cbor decoder: %v", err))
	}
}

// Marshal encodes r deterministically.
func Marshal(r *Register) ([]byte, error) {
	data, err := encMode.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding register: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a register previously encoded with Marshal.
func Unmarshal(data []byte) (*Register, error) {
	var r Register
	if err := decMode.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding register: %w", err)
	}
	return &r, nil
}
