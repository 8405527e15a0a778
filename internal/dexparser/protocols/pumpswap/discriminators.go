// Package pumpswap decodes the Pumpswap AMM Anchor events (Buy, Sell,
// CreatePool, AddLiquidity, RemoveLiquidity) and assembles TradeInfo/
// PoolEvent records from them (spec §4.6).
package pumpswap

// anchorEventPrefix mirrors pumpfun's: every Anchor program's self-CPI
// event log is prefixed by this fixed 8-byte discriminator ahead of the
// event's own sha256("event:<Name>") discriminator.
var anchorEventPrefix = [8]byte{228, 69, 165, 46, 81, 203, 154, 29}

// 16-byte Anchor event discriminators for the five Pumpswap events (spec §4.6).
var (
	BuyDiscriminator             = join(anchorEventPrefix, [8]byte{103, 244, 82, 31, 44, 245, 119, 119})
	SellDiscriminator            = join(anchorEventPrefix, [8]byte{62, 47, 55, 10, 165, 3, 220, 42})
	CreatePoolDiscriminator      = join(anchorEventPrefix, [8]byte{177, 49, 12, 210, 160, 118, 167, 116})
	AddLiquidityDiscriminator    = join(anchorEventPrefix, [8]byte{120, 248, 61, 83, 31, 142, 107, 144})
	RemoveLiquidityDiscriminator = join(anchorEventPrefix, [8]byte{22, 9, 133, 26, 160, 44, 71, 192})
)

func join(a, b [8]byte) []byte {
	out := make([]byte, 16)
	copy(out[:8], a[:])
	copy(out[8:], b[:])
	return out
}
