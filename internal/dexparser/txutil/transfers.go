package txutil

import (
	"encoding/binary"
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/classifier"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// GetTransferActions materializes every compiled-form SPL-token
// Transfer/TransferChecked instruction into a TransferData; parsed-form
// instructions, which carry no data bytes, are skipped and yield no
// record. Records are bucketed by the outer (DEX) program that
// owns its position in the instruction tree — inner CPI'd token transfers
// are attributed back to the outer instruction that triggered them (spec
// §4.5).
func GetTransferActions(a *adapter.Adapter, c *classifier.Classifier) map[string][]types.TransferData {
	outerProgram := make(map[int]string)
	for _, ci := range c.Flatten() {
		if ci.InnerIndex == nil {
			outerProgram[ci.OuterIndex] = ci.ProgramID
		}
	}

	result := make(map[string][]types.TransferData)
	for _, ci := range c.Flatten() {
		if !registry.IsTokenProgram(ci.ProgramID) {
			continue
		}
		td, ok := buildTransferData(a, ci)
		if !ok {
			continue
		}
		owner := outerProgram[ci.OuterIndex]
		if owner == "" {
			owner = ci.ProgramID
		}
		result[owner] = append(result[owner], td)
	}
	return result
}

// buildTransferData decodes a single classified SPL-token instruction into
// a TransferData, handling both Transfer (opcode 3) and TransferChecked
// (opcode 12); it mirrors the teacher's processTransfer/processTransferCheck.
func buildTransferData(a *adapter.Adapter, ci types.ClassifiedInstruction) (types.TransferData, bool) {
	ix := ci.Instruction
	if len(ix.Data) == 0 || len(ix.Accounts) == 0 {
		return types.TransferData{}, false
	}

	var source, destination, mint string
	var rawAmount uint64
	decimals := uint8(0)

	switch ix.Data[0] {
	case registry.SPLInstrTransfer:
		if len(ix.Accounts) < 2 || len(ix.Data) < 9 {
			return types.TransferData{}, false
		}
		source, destination = ix.Accounts[0], ix.Accounts[1]
		rawAmount = binary.LittleEndian.Uint64(ix.Data[1:9])
		mint = mintFor(a, destination, source)
		decimals = a.TokenDecimals(mint)
	case registry.SPLInstrTransferChecked:
		if len(ix.Accounts) < 3 || len(ix.Data) < 10 {
			return types.TransferData{}, false
		}
		source, mint, destination = ix.Accounts[0], ix.Accounts[1], ix.Accounts[2]
		rawAmount = binary.LittleEndian.Uint64(ix.Data[1:9])
		decimals = ix.Data[9]
	default:
		return types.TransferData{}, false
	}

	if mint == "" {
		mint = registry.NativeSOLMint
	}
	ui := convertToUIAmount(rawAmount, decimals)

	srcOwner, _ := a.GetTokenAccountOwner(source)
	dstOwner, _ := a.GetTokenAccountOwner(destination)

	return types.TransferData{
		ProgramID: ci.ProgramID,
		From:      source,
		To:        destination,
		Idx:       ci.Idx(),
		Amount: types.TokenAmount{
			Mint:     mint,
			Amount:   strconv.FormatUint(rawAmount, 10),
			Decimals: decimals,
			UIAmount: ui,
		},
		Info: types.TokenInfo{
			Mint:             mint,
			Decimals:         decimals,
			AmountRaw:        strconv.FormatUint(rawAmount, 10),
			AmountUI:         ui,
			Source:           source,
			Destination:      destination,
			SourceOwner:      srcOwner,
			DestinationOwner: dstOwner,
		},
	}, true
}

// mintFor resolves the mint of an unchecked Transfer by preferring the
// destination account's known mint, falling back to the source's.
func mintFor(a *adapter.Adapter, destination, source string) string {
	if info, ok := a.SPLTokenMap()[destination]; ok && info.Mint != "" {
		return info.Mint
	}
	if info, ok := a.SPLTokenMap()[source]; ok && info.Mint != "" {
		return info.Mint
	}
	return ""
}

func convertToUIAmount(raw uint64, decimals uint8) float64 {
	if decimals == 0 {
		return float64(raw)
	}
	scale := 1.0
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return float64(raw) / scale
}
