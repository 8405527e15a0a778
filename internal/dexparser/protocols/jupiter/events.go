// Package jupiter decodes Jupiter's aggregator RouteV2 Anchor event and,
// when that event is absent, falls back to sweeping the SPL-token transfers
// a route CPI'd into (spec.md is silent on Jupiter; this supplements it per
// SPEC_FULL.md's DOMAIN STACK, grounded on the teacher's event_jupiter.go).
package jupiter

import (
	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// RouteEventDiscriminator is the Anchor event discriminator for Jupiter's
// RouteV2 event, carried over from the teacher's JupiterRouteEventDiscriminator.
var RouteEventDiscriminator = [16]byte{228, 69, 165, 46, 81, 203, 154, 29, 64, 198, 205, 232, 38, 8, 113, 226}

// SwapEvent is the Borsh-decoded Jupiter RouteV2 event payload.
type SwapEvent struct {
	Amm          solana.PublicKey
	InputMint    solana.PublicKey
	InputAmount  uint64
	OutputMint   solana.PublicKey
	OutputAmount uint64
}

// DecodeSwapEvent Borsh-decodes a Jupiter RouteV2 event payload (everything
// after the 16-byte discriminator).
func DecodeSwapEvent(payload []byte) (SwapEvent, error) {
	var ev SwapEvent
	decoder := ag_binary.NewBorshDecoder(payload)
	if err := decoder.Decode(&ev); err != nil {
		return ev, err
	}
	return ev, nil
}
