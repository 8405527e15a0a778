// Package registry holds the static program-ID / name / token-opcode tables
// used across the parsing pipeline (spec §4.2). Every table here is built
// once at package init and is read-only thereafter.
package registry

import "github.com/gagliardetto/solana-go"

// Known DEX / launch program IDs (base58, exact per spec §6).
const (
	JupiterProgramID  = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"
	RaydiumProgramID  = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	OrcaProgramID     = "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"
	MeteoraProgramID  = "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo"
	PumpfunProgramID  = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	PumpswapProgramID = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"

	// NativeSOLMint is the synthetic mint address used for native SOL.
	NativeSOLMint = "So11111111111111111111111111111111111111112"

	// USDCMint / USDTMint round out the canonical quote-currency list.
	USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	USDTMint = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

// SPLTokenProgramID / SPLToken2022ProgramID are the legacy and Token-2022
// SPL token program IDs.
var (
	SPLTokenProgramID     = solana.TokenProgramID.String()
	SPLToken2022ProgramID = solana.Token2022ProgramID.String()
)

// System / utility program IDs that are never a DEX and should be ignored
// while identifying the dominant program for a transaction.
const (
	SystemProgramID              = "11111111111111111111111111111111"
	AssociatedTokenAccountProgID = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	MemoProgramID                = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
	ComputeBudgetProgramID       = "ComputeBudget111111111111111111111111111111"
	AddressLookupTableProgramID  = "AddressLookupTab1e1111111111111111111111111"
)

var systemOrSkipProgramIDs = map[string]struct{}{
	SystemProgramID:              {},
	SPLTokenProgramID:            {},
	SPLToken2022ProgramID:        {},
	AssociatedTokenAccountProgID: {},
	MemoProgramID:                {},
	ComputeBudgetProgramID:       {},
	AddressLookupTableProgramID:  {},
}

var programNames = map[string]string{
	JupiterProgramID:  "Jupiter",
	RaydiumProgramID:  "Raydium",
	OrcaProgramID:     "Orca",
	MeteoraProgramID:  "Meteora",
	PumpfunProgramID:  "Pumpfun",
	PumpswapProgramID: "Pumpswap",
}

// Name returns the display name for a program ID, or "Unknown DEX" if the
// program isn't in the registry.
func Name(programID string) string {
	if name, ok := programNames[programID]; ok {
		return name
	}
	return "Unknown DEX"
}

// IsSystemOrSkip reports whether programID is a system program or one of the
// explicitly-skipped program IDs that should never be treated as a DEX.
func IsSystemOrSkip(programID string) bool {
	_, ok := systemOrSkipProgramIDs[programID]
	return ok
}

// IsTokenProgram reports whether programID is the legacy or Token-2022 SPL
// token program.
func IsTokenProgram(programID string) bool {
	return programID == SPLTokenProgramID || programID == SPLToken2022ProgramID
}

// QuoteMints is the canonical list of quote-currency mints.
var QuoteMints = []string{NativeSOLMint, USDCMint, USDTMint}

// IsQuoteMint reports whether mint is one of the canonical quote currencies.
func IsQuoteMint(mint string) bool {
	for _, m := range QuoteMints {
		if m == mint {
			return true
		}
	}
	return false
}

// SPL token instruction-type opcodes (first data byte), per spec §4.2.
const (
	SPLInstrTransfer        byte = 3
	SPLInstrInitializeMint  byte = 0
	SPLInstrMintTo          byte = 7
	SPLInstrTransferChecked byte = 12
	SPLInstrBurn            byte = 8
	SPLInstrMintToChecked   byte = 14
	SPLInstrBurnChecked     byte = 15
	SPLInstrCloseAccount    byte = 9
)
