package adapter

import "encoding/json"

// RawTransaction is the JSON shape accepted at the boundary (spec §6). It
// accepts both raw/compiled and parsed instruction encodings; RawInstruction
// normalizes the difference.
type RawTransaction struct {
	Slot      uint64          `json:"slot"`
	Signature string          `json:"signature"`
	BlockTime *int64          `json:"blockTime"`
	Version   json.RawMessage `json:"version"`
	Message   RawMessage      `json:"message"`

	InnerInstructions []RawInnerInstructionGroup `json:"innerInstructions"`
	Meta              RawMeta                    `json:"meta"`
}

// RawMessage mirrors the versioned-or-legacy Solana message shape.
type RawMessage struct {
	AccountKeys         []string           `json:"accountKeys"`
	StaticAccountKeys   []string           `json:"staticAccountKeys"`
	AddressTableLookups []RawAddressLookup `json:"addressTableLookups"`
	Header              RawMessageHeader   `json:"header"`
	Instructions        []RawInstruction   `json:"instructions"`
}

// RawMessageHeader carries the signer/readonly counts needed to split the
// account-key list into signers vs. non-signers.
type RawMessageHeader struct {
	NumRequiredSignatures       int `json:"numRequiredSignatures"`
	NumReadonlySignedAccounts   int `json:"numReadonlySignedAccounts"`
	NumReadonlyUnsignedAccounts int `json:"numReadonlyUnsignedAccounts"`
}

// RawAddressLookup is one address-table-lookup entry; only the table's
// account key is kept. The resolved writable/readonly addresses are read
// from meta.loadedAddresses (RawLoadedAddresses) instead.
type RawAddressLookup struct {
	AccountKey string `json:"accountKey"`
}

// RawInstruction accepts both compiled (programIdIndex/accounts as indices
// into Message.AccountKeys, data as a base58/base64 string) and parsed
// (programId, accounts as resolved strings, parsed:{type,info}) shapes.
type RawInstruction struct {
	ProgramIDIndex *int            `json:"programIdIndex"`
	ProgramID      string          `json:"programId"`
	Accounts       json.RawMessage `json:"accounts"`
	Data           json.RawMessage `json:"data"`
	Parsed         *RawParsedInfo  `json:"parsed"`
}

// RawParsedInfo is the {type, info} payload parsed-encoding instructions
// carry directly from the RPC layer.
type RawParsedInfo struct {
	Type string         `json:"type"`
	Info map[string]any `json:"info"`
}

// RawInnerInstructionGroup groups the inner instructions CPI'd from one
// outer instruction index.
type RawInnerInstructionGroup struct {
	Index        int              `json:"index"`
	Instructions []RawInstruction `json:"instructions"`
}

// RawMeta mirrors meta.* from the RPC transaction envelope.
type RawMeta struct {
	Fee                  uint64             `json:"fee"`
	Err                  json.RawMessage    `json:"err"`
	PreBalances          []uint64           `json:"preBalances"`
	PostBalances         []uint64           `json:"postBalances"`
	PreTokenBalances     []RawTokenBalance  `json:"preTokenBalances"`
	PostTokenBalances    []RawTokenBalance  `json:"postTokenBalances"`
	ComputeUnitsConsumed *uint64            `json:"computeUnitsConsumed"`
	LoadedAddresses      RawLoadedAddresses `json:"loadedAddresses"`
}

// RawLoadedAddresses is the writable/readonly address-table resolution
// attached to meta for versioned transactions.
type RawLoadedAddresses struct {
	Writable []string `json:"writable"`
	Readonly []string `json:"readonly"`
}

// RawTokenBalance is one entry of meta.{pre,post}TokenBalances.
type RawTokenBalance struct {
	AccountIndex  *int              `json:"accountIndex"`
	Account       string            `json:"account"`
	Mint          string            `json:"mint"`
	Owner         string            `json:"owner"`
	UITokenAmount RawUITokenAmount  `json:"uiTokenAmount"`
}

// RawUITokenAmount is the nested amount/decimals/uiAmount triple the RPC
// layer reports for each token balance entry.
type RawUITokenAmount struct {
	Amount   string   `json:"amount"`
	Decimals uint8    `json:"decimals"`
	UIAmount *float64 `json:"uiAmount"`
}

// IsFailed reports whether meta.err carries a non-null value.
func (m RawMeta) IsFailed() bool {
	return len(m.Err) > 0 && string(m.Err) != "null"
}
