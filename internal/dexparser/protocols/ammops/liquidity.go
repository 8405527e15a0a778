// Package ammops holds the liquidity-direction heuristic shared by the
// Raydium, Orca, and Meteora protocol parsers. Unlike Pumpfun/Pumpswap,
// spec §4.6 gives these three AMMs no bit-exact Anchor event layout, so
// their liquidity events are classified the way the teacher's
// liquidity_ops.go does: a hard rule on mint/burn-shaped transfer records
// (an empty source or destination), then a fallback on Anchor
// instruction-name discriminators.
package ammops

import (
	"crypto/sha256"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Direction is the detected liquidity action for one classified instruction.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionAdd
	DirectionRemove
)

func anchorDiscriminator8(name string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

func discSet(names ...string) map[[8]byte]struct{} {
	m := make(map[[8]byte]struct{}, len(names))
	for _, n := range names {
		m[anchorDiscriminator8(n)] = struct{}{}
	}
	return m
}

// addDiscriminators / removeDiscriminators are the global: Anchor
// instruction-name discriminators the teacher observed in the wild across
// Raydium CLMM/CPMM, Orca Whirlpools, and the Meteora family.
var (
	addDiscriminators = discSet(
		"add_liquidity_by_strategy2",
		"add_liquidity_by_strategy",
		"add_liquidity_with_slippage",
		"add_liquidity",
		"increase_liquidity",
		"increase_liquidity_v2",
	)
	removeDiscriminators = discSet(
		"remove_liquidity",
		"remove_liquidity_by_strategy",
		"remove_liquidity_by_strategy2",
		"decrease_liquidity",
		"decrease_liquidity_v2",
		"close_position",
		"withdraw",
		"withdraw_liquidity",
		"withdraw_one",
		"withdraw_one_token",
		"claim_and_withdraw",
	)
)

func discPrefix(data []byte) ([8]byte, bool) {
	var prefix [8]byte
	if len(data) < 8 {
		return prefix, false
	}
	copy(prefix[:], data[:8])
	return prefix, true
}

// Classify inspects the transfer flows a classified instruction CPI'd
// (mint/burn are a hard signal) and falls back to its own Anchor
// instruction-name discriminator.
func Classify(ci types.ClassifiedInstruction, transfers []types.TransferData) Direction {
	for _, t := range transfers {
		if t.Idx != ci.Idx() {
			continue
		}
		switch {
		case t.From == "" && t.To != "":
			return DirectionAdd
		case t.From != "" && t.To == "":
			return DirectionRemove
		}
	}
	if prefix, ok := discPrefix(ci.Instruction.Data); ok {
		if _, hit := addDiscriminators[prefix]; hit {
			return DirectionAdd
		}
		if _, hit := removeDiscriminators[prefix]; hit {
			return DirectionRemove
		}
	}
	return DirectionNone
}

// IsMeteoraFamily reports whether programID is registry.MeteoraProgramID;
// no other Meteora pool program is recognized. Used as the weak "assume
// remove" fallback the teacher applies when nothing more specific matched.
func IsMeteoraFamily(programID string) bool {
	return programID == registry.MeteoraProgramID
}
