package pumpfun

// anchorEventPrefix is the universal 8-byte self-CPI log discriminator
// every Anchor program prefixes an emitted event with, ahead of the
// event's own 8-byte sha256("event:<Name>") discriminator (confirmed here
// against the teacher's JupiterRouteEventDiscriminator, whose leading 8
// bytes match this exact prefix).
var anchorEventPrefix = [8]byte{228, 69, 165, 46, 81, 203, 154, 29}

// 16-byte Anchor event discriminators for the four Pumpfun bonding-curve
// events (spec §4.6).
var (
	TradeDiscriminator    = join(anchorEventPrefix, [8]byte{189, 219, 127, 211, 78, 230, 97, 238})
	CreateDiscriminator   = join(anchorEventPrefix, [8]byte{27, 114, 169, 77, 222, 235, 99, 118})
	CompleteDiscriminator = join(anchorEventPrefix, [8]byte{95, 114, 97, 156, 212, 46, 152, 8})
	MigrateDiscriminator  = join(anchorEventPrefix, [8]byte{216, 175, 231, 95, 45, 98, 108, 21})
)

func join(a, b [8]byte) []byte {
	out := make([]byte, 16)
	copy(out[:8], a[:])
	copy(out[8:], b[:])
	return out
}
