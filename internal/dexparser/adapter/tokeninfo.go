package adapter

import (
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// extractTokenInfo builds splTokenMap/splDecimalsMap (spec §4.3 step 4-5):
// post-token-balances seed the maps, then every outer+inner SPL-token
// instruction backfills mint/decimals by opcode, then native SOL is
// guaranteed an entry.
func (a *Adapter) extractTokenInfo() {
	a.splTokenMap = make(map[string]types.TokenInfo)
	a.splDecimalsMap = make(map[string]uint8)

	a.extractTokenBalances()
	a.extractTokenFromInstructions()

	if _, ok := a.splTokenMap[registry.NativeSOLMint]; !ok {
		a.splTokenMap[registry.NativeSOLMint] = types.TokenInfo{
			Mint:     registry.NativeSOLMint,
			Decimals: 9,
			AmountRaw: "0",
		}
	}
	if _, ok := a.splDecimalsMap[registry.NativeSOLMint]; !ok {
		a.splDecimalsMap[registry.NativeSOLMint] = 9
	}
}

func (a *Adapter) extractTokenBalances() {
	for _, b := range a.raw.Meta.PostTokenBalances {
		if b.Mint == "" {
			continue
		}
		accountKey := resolveTokenBalanceAccount(b, a.accountKeys)
		if accountKey == "" {
			continue
		}
		if _, ok := a.splTokenMap[accountKey]; !ok {
			ui := 0.0
			if b.UITokenAmount.UIAmount != nil {
				ui = *b.UITokenAmount.UIAmount
			}
			a.splTokenMap[accountKey] = types.TokenInfo{
				Mint:      b.Mint,
				Decimals:  b.UITokenAmount.Decimals,
				AmountRaw: b.UITokenAmount.Amount,
				AmountUI:  ui,
			}
		}
		if _, ok := a.splDecimalsMap[b.Mint]; !ok {
			a.splDecimalsMap[b.Mint] = b.UITokenAmount.Decimals
		}
	}
}

func (a *Adapter) extractTokenFromInstructions() {
	for _, ix := range a.instructions {
		a.extractFromInstruction(ix)
	}
	for _, group := range a.innerInstructions {
		for _, ix := range group.Instructions {
			a.extractFromInstruction(ix)
		}
	}
}

func (a *Adapter) extractFromInstruction(ix types.SolanaInstruction) {
	if !registry.IsTokenProgram(ix.ProgramID) {
		return
	}
	if ix.Parsed != nil {
		a.extractFromParsedTransfer(ix)
		return
	}
	a.extractFromCompiledTransfer(ix)
}

// extractFromParsedTransfer mirrors the Rust adapter's extractFromParsedTransfer.
func (a *Adapter) extractFromParsedTransfer(ix types.SolanaInstruction) {
	info := ix.Parsed.Info
	source, _ := info["source"].(string)
	destination, _ := info["destination"].(string)
	mint, _ := info["mint"].(string)

	var decimals *uint8
	switch v := info["decimals"].(type) {
	case float64:
		d := uint8(v)
		decimals = &d
	}

	if source == "" && destination == "" {
		return
	}
	a.setTokenInfo(source, destination, mint, decimals)
}

// extractFromCompiledTransfer mirrors the Rust adapter's
// extractFromCompiledTransfer opcode dispatch (spec §4.2/§4.3).
func (a *Adapter) extractFromCompiledTransfer(ix types.SolanaInstruction) {
	if len(ix.Data) == 0 || len(ix.Accounts) == 0 {
		return
	}
	opcode := ix.Data[0]

	var source, destination, mint string
	var decimals *uint8

	byteAt := func(offset int) *uint8 {
		if offset >= len(ix.Data) {
			return nil
		}
		d := ix.Data[offset]
		return &d
	}

	switch opcode {
	case registry.SPLInstrTransfer:
		if len(ix.Accounts) < 2 {
			return
		}
		source, destination = ix.Accounts[0], ix.Accounts[1]
	case registry.SPLInstrTransferChecked:
		if len(ix.Accounts) < 3 {
			return
		}
		source, mint, destination = ix.Accounts[0], ix.Accounts[1], ix.Accounts[2]
		decimals = byteAt(9)
	case registry.SPLInstrInitializeMint:
		if len(ix.Accounts) < 2 {
			return
		}
		mint, destination = ix.Accounts[0], ix.Accounts[1]
	case registry.SPLInstrMintTo:
		if len(ix.Accounts) < 2 {
			return
		}
		mint, destination = ix.Accounts[0], ix.Accounts[1]
	case registry.SPLInstrMintToChecked:
		if len(ix.Accounts) < 2 {
			return
		}
		mint, destination = ix.Accounts[0], ix.Accounts[1]
		decimals = byteAt(9)
	case registry.SPLInstrBurn:
		if len(ix.Accounts) < 2 {
			return
		}
		source, mint = ix.Accounts[0], ix.Accounts[1]
	case registry.SPLInstrBurnChecked:
		if len(ix.Accounts) < 2 {
			return
		}
		source, mint = ix.Accounts[0], ix.Accounts[1]
		decimals = byteAt(9)
	case registry.SPLInstrCloseAccount:
		if len(ix.Accounts) < 2 {
			return
		}
		source, destination = ix.Accounts[0], ix.Accounts[1]
	default:
		return
	}

	a.setTokenInfo(source, destination, mint, decimals)
}

// setTokenInfo mirrors the Rust adapter's setTokenInfo: it only overwrites
// an existing entry when both mint and decimals are known, and always
// backfills splDecimalsMap when both are present.
func (a *Adapter) setTokenInfo(source, destination, mint string, decimals *uint8) {
	upsert := func(key string) {
		if key == "" {
			return
		}
		_, exists := a.splTokenMap[key]
		switch {
		case exists && mint != "" && decimals != nil:
			a.splTokenMap[key] = types.TokenInfo{Mint: mint, Decimals: *decimals, AmountRaw: "0"}
		case !exists:
			m := mint
			if m == "" {
				m = registry.NativeSOLMint
			}
			d := uint8(9)
			if decimals != nil {
				d = *decimals
			}
			a.splTokenMap[key] = types.TokenInfo{Mint: m, Decimals: d, AmountRaw: "0"}
		}
	}
	upsert(source)
	upsert(destination)

	if mint != "" && decimals != nil {
		if _, ok := a.splDecimalsMap[mint]; !ok {
			a.splDecimalsMap[mint] = *decimals
		}
	}
}

func convertToUIAmount(raw string, decimals uint8) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	if decimals == 0 {
		return v
	}
	scale := 1.0
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return v / scale
}
