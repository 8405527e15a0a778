// Package adapter implements the TransactionAdapter: a single read-only
// facade over one normalized transaction (spec §4.3). It is built once and
// never mutated externally.
package adapter

import (
	"strconv"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/dexerr"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Adapter is the normalized, read-only view of one transaction.
type Adapter struct {
	raw *RawTransaction
	cfg types.ParseConfig

	accountKeys  []string
	accountIndex map[string]int

	signers []string

	instructions      []types.SolanaInstruction
	innerInstructions []types.InnerInstruction

	splTokenMap    map[string]types.TokenInfo
	splDecimalsMap map[string]uint8
}

// New builds an Adapter over raw. Construction order matters: account keys
// must exist before instructions are resolved, and instructions must be
// resolved before SPL token info is extracted.
func New(raw *RawTransaction, cfg types.ParseConfig) (*Adapter, error) {
	if err := checkVersion(raw.Version); err != nil {
		return nil, err
	}

	a := &Adapter{raw: raw, cfg: cfg}
	a.extractAccountKeys()
	a.deriveSigners()
	if err := a.resolveInstructions(); err != nil {
		return nil, err
	}
	a.extractTokenInfo()
	return a, nil
}

func checkVersion(raw []byte) error {
	s := string(raw)
	switch s {
	case "", "null", `"legacy"`, "0":
		return nil
	default:
		return dexerr.UnsupportedVersion(s)
	}
}

// extractAccountKeys builds the index-backed account-key list: static
// message keys, then loaded-writable, then loaded-readonly, then any
// program ID or instruction account not already present. The original
// Solana ordering is preserved — this slice is never sorted (spec §9
// "Account-key ordering").
func (a *Adapter) extractAccountKeys() {
	seen := make(map[string]struct{})
	var keys []string

	add := func(k string) {
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	staticKeys := a.raw.Message.AccountKeys
	if len(staticKeys) == 0 {
		staticKeys = a.raw.Message.StaticAccountKeys
	}
	for _, k := range staticKeys {
		add(k)
	}
	for _, k := range a.raw.Meta.LoadedAddresses.Writable {
		add(k)
	}
	for _, k := range a.raw.Meta.LoadedAddresses.Readonly {
		add(k)
	}

	unionInstruction := func(ix RawInstruction) {
		if ix.ProgramID != "" {
			add(ix.ProgramID)
		} else if ix.ProgramIDIndex != nil && *ix.ProgramIDIndex < len(keys) {
			add(keys[*ix.ProgramIDIndex])
		}
		for _, acc := range decodeInstructionAccounts(ix.Accounts, keys) {
			add(acc)
		}
	}
	for _, ix := range a.raw.Message.Instructions {
		unionInstruction(ix)
	}
	for _, group := range a.raw.InnerInstructions {
		for _, ix := range group.Instructions {
			unionInstruction(ix)
		}
	}

	a.accountKeys = keys
	idx := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, ok := idx[k]; !ok {
			idx[k] = i
		}
	}
	a.accountIndex = idx
}

// deriveSigners takes the first numRequiredSignatures entries of the
// account-key list.
func (a *Adapter) deriveSigners() {
	n := a.raw.Message.Header.NumRequiredSignatures
	if n <= 0 {
		if len(a.accountKeys) > 0 {
			a.signers = []string{a.accountKeys[0]}
		}
		return
	}
	if n > len(a.accountKeys) {
		n = len(a.accountKeys)
	}
	a.signers = append([]string{}, a.accountKeys[:n]...)
}

func (a *Adapter) resolveInstruction(ix RawInstruction) types.SolanaInstruction {
	programID := ix.ProgramID
	if programID == "" && ix.ProgramIDIndex != nil && *ix.ProgramIDIndex < len(a.accountKeys) {
		programID = a.accountKeys[*ix.ProgramIDIndex]
	}
	accounts := decodeInstructionAccounts(ix.Accounts, a.accountKeys)
	data := decodeInstructionData(ix.Data)

	var parsed *types.ParsedPayload
	if ix.Parsed != nil {
		parsed = &types.ParsedPayload{Type: ix.Parsed.Type, Info: ix.Parsed.Info}
	}

	return types.SolanaInstruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
		Parsed:    parsed,
	}
}

func (a *Adapter) resolveInstructions() error {
	a.instructions = make([]types.SolanaInstruction, 0, len(a.raw.Message.Instructions))
	for _, ix := range a.raw.Message.Instructions {
		a.instructions = append(a.instructions, a.resolveInstruction(ix))
	}

	a.innerInstructions = make([]types.InnerInstruction, 0, len(a.raw.InnerInstructions))
	for _, group := range a.raw.InnerInstructions {
		resolved := make([]types.SolanaInstruction, 0, len(group.Instructions))
		for _, ix := range group.Instructions {
			resolved = append(resolved, a.resolveInstruction(ix))
		}
		a.innerInstructions = append(a.innerInstructions, types.InnerInstruction{
			Index:        group.Index,
			Instructions: resolved,
		})
	}
	return nil
}

// --- simple views ---

func (a *Adapter) Slot() uint64     { return a.raw.Slot }
func (a *Adapter) Signature() string { return a.raw.Signature }

func (a *Adapter) BlockTime() int64 {
	if a.raw.BlockTime == nil {
		return 0
	}
	return *a.raw.BlockTime
}

func (a *Adapter) Signers() []string { return a.signers }

func (a *Adapter) Signer() string {
	if len(a.signers) == 0 {
		return ""
	}
	return a.signers[0]
}

func (a *Adapter) AccountKeys() []string { return a.accountKeys }

func (a *Adapter) Instructions() []types.SolanaInstruction { return a.instructions }

func (a *Adapter) InnerInstructions() []types.InnerInstruction { return a.innerInstructions }

func (a *Adapter) ComputeUnits() uint64 {
	if a.raw.Meta.ComputeUnitsConsumed == nil {
		return 0
	}
	return *a.raw.Meta.ComputeUnitsConsumed
}

// GetInstructionAccounts returns the resolved account list for ix.
func (a *Adapter) GetInstructionAccounts(ix types.SolanaInstruction) []string { return ix.Accounts }

// GetInstructionType returns the parsed type name, or the decimal string of
// the first data byte for compiled instructions.
func (a *Adapter) GetInstructionType(ix types.SolanaInstruction) string {
	if ix.Parsed != nil {
		return ix.Parsed.Type
	}
	if b, ok := firstDataByte(ix.Data); ok {
		return strconv.Itoa(int(b))
	}
	return ""
}

// GetAccountIndex returns the position of address in the account-key list.
func (a *Adapter) GetAccountIndex(address string) (int, bool) {
	i, ok := a.accountIndex[address]
	return i, ok
}

// GetTokenAccountOwner looks up accountKey's owner, preferring post- over
// pre-token-balances.
func (a *Adapter) GetTokenAccountOwner(accountKey string) (string, bool) {
	if owner, ok := findTokenBalanceOwner(a.raw.Meta.PostTokenBalances, a.accountKeys, accountKey); ok {
		return owner, true
	}
	if owner, ok := findTokenBalanceOwner(a.raw.Meta.PreTokenBalances, a.accountKeys, accountKey); ok {
		return owner, true
	}
	return "", false
}

func findTokenBalanceOwner(balances []RawTokenBalance, keys []string, accountKey string) (string, bool) {
	for _, b := range balances {
		if resolveTokenBalanceAccount(b, keys) == accountKey {
			if b.Owner != "" {
				return b.Owner, true
			}
		}
	}
	return "", false
}

func resolveTokenBalanceAccount(b RawTokenBalance, keys []string) string {
	if b.Account != "" {
		return b.Account
	}
	if b.AccountIndex != nil && *b.AccountIndex < len(keys) {
		return keys[*b.AccountIndex]
	}
	return ""
}

// Fee returns the transaction fee as a SOL TokenAmount (spec §4.3).
func (a *Adapter) Fee() types.TokenAmount {
	return solToAmount(a.raw.Meta.Fee)
}

// TxStatus reports Success/Failed/Unknown per spec §4.3.
func (a *Adapter) TxStatus() types.TxStatus {
	if a.raw.Meta.IsFailed() {
		return types.TxFailed
	}
	if a.raw.Meta.PreBalances != nil || a.raw.Meta.PostBalances != nil {
		return types.TxSuccess
	}
	return types.TxUnknown
}

func solToAmount(lamports uint64) types.TokenAmount {
	return types.TokenAmount{
		Mint:     registry.NativeSOLMint,
		Amount:   strconv.FormatUint(lamports, 10),
		Decimals: 9,
		UIAmount: float64(lamports) / 1e9,
	}
}

// SPLTokenMap exposes the account_key -> TokenInfo index built during
// construction.
func (a *Adapter) SPLTokenMap() map[string]types.TokenInfo { return a.splTokenMap }

// SPLDecimalsMap exposes the mint -> decimals index built during
// construction.
func (a *Adapter) SPLDecimalsMap() map[string]uint8 { return a.splDecimalsMap }

// TokenDecimals returns the known decimals for mint, defaulting to 0 when
// unknown.
func (a *Adapter) TokenDecimals(mint string) uint8 {
	if d, ok := a.splDecimalsMap[mint]; ok {
		return d
	}
	return 0
}
