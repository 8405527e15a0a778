// Package pumpfun decodes the Pumpfun bonding-curve Anchor events (Trade,
// Create, Complete, Migrate) and assembles TradeInfo/MemeEvent records from
// them (spec §4.6).
package pumpfun

import (
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/binreader"
)

// TradeEvent is the decoded Pumpfun Buy/Sell payload.
type TradeEvent struct {
	Mint                  string
	SolAmount             uint64
	TokenAmount           uint64
	IsBuy                 bool
	User                  string
	Timestamp             int64
	VirtualSOLReserves    uint64
	VirtualTokenReserves  uint64
	HasExtended           bool
	RealSOLReserves       uint64
	RealTokenReserves     uint64
	FeeRecipient          string
	FeeBasisPoints        uint16
	Fee                   uint64
	Creator               string
	CreatorFeeBasisPoints uint16
	CreatorFee            uint64
}

// DecodeTradeEvent decodes the fixed Trade layout described in spec §4.6.
// If at least 52 bytes remain after the core fields, the extended fee/
// creator fields are also decoded.
func DecodeTradeEvent(payload []byte) (TradeEvent, error) {
	r := binreader.New(payload)
	var ev TradeEvent
	var err error

	if ev.Mint, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.SolAmount, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.TokenAmount, err = r.ReadU64(); err != nil {
		return ev, err
	}
	isBuy, err := r.ReadU8()
	if err != nil {
		return ev, err
	}
	ev.IsBuy = isBuy != 0
	if ev.User, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.Timestamp, err = r.ReadI64(); err != nil {
		return ev, err
	}
	if ev.Timestamp < 0 {
		ev.Timestamp = 0
	}
	if ev.VirtualSOLReserves, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.VirtualTokenReserves, err = r.ReadU64(); err != nil {
		return ev, err
	}

	if r.Remaining() < 52 {
		return ev, nil
	}
	ev.HasExtended = true
	if ev.RealSOLReserves, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.RealTokenReserves, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.FeeRecipient, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.FeeBasisPoints, err = r.ReadU16(); err != nil {
		return ev, err
	}
	if ev.Fee, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.Creator, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.CreatorFeeBasisPoints, err = r.ReadU16(); err != nil {
		return ev, err
	}
	if ev.CreatorFee, err = r.ReadU64(); err != nil {
		return ev, err
	}
	return ev, nil
}

// CreateEvent is the decoded Pumpfun token-launch payload.
type CreateEvent struct {
	Name                  string
	Symbol                string
	URI                   string
	Mint                  string
	BondingCurve          string
	User                  string
	HasCreator            bool
	Creator               string
	Timestamp             int64
	HasReserves           bool
	VirtualTokenReserves  uint64
	VirtualSOLReserves    uint64
	RealTokenReserves     uint64
	TokenTotalSupply      uint64
}

// DecodeCreateEvent decodes the Pumpfun Create layout (spec §4.6).
func DecodeCreateEvent(payload []byte) (CreateEvent, error) {
	r := binreader.New(payload)
	var ev CreateEvent
	var err error

	if ev.Name, err = r.ReadString(); err != nil {
		return ev, err
	}
	if ev.Symbol, err = r.ReadString(); err != nil {
		return ev, err
	}
	if ev.URI, err = r.ReadString(); err != nil {
		return ev, err
	}
	if ev.Mint, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.BondingCurve, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.User, err = r.ReadPubkey(); err != nil {
		return ev, err
	}

	if r.Remaining() < 16 {
		return ev, nil
	}
	ev.HasCreator = true
	if ev.Creator, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.Timestamp, err = r.ReadI64(); err != nil {
		return ev, err
	}
	if ev.Timestamp < 0 {
		ev.Timestamp = 0
	}

	if r.Remaining() < 32 {
		return ev, nil
	}
	ev.HasReserves = true
	if ev.VirtualTokenReserves, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.VirtualSOLReserves, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.RealTokenReserves, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.TokenTotalSupply, err = r.ReadU64(); err != nil {
		return ev, err
	}
	return ev, nil
}

// CompleteEvent is the decoded Pumpfun bonding-curve completion payload.
type CompleteEvent struct {
	User         string
	Mint         string
	BondingCurve string
	Timestamp    int64
}

// DecodeCompleteEvent decodes the Pumpfun Complete layout (spec §4.6).
// Negative timestamps normalize to 0.
func DecodeCompleteEvent(payload []byte) (CompleteEvent, error) {
	r := binreader.New(payload)
	var ev CompleteEvent
	var err error

	if ev.User, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.Mint, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.BondingCurve, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.Timestamp, err = r.ReadI64(); err != nil {
		return ev, err
	}
	if ev.Timestamp < 0 {
		ev.Timestamp = 0
	}
	return ev, nil
}

// MigrateEvent is the decoded Pumpfun bonding-curve-to-AMM migration
// payload.
type MigrateEvent struct {
	User           string
	Mint           string
	MintAmount     uint64
	SOLAmount      uint64
	PoolMigrateFee uint64
	BondingCurve   string
	Timestamp      int64
	Pool           string
}

// DecodeMigrateEvent decodes the Pumpfun Migrate layout (spec §4.6). The
// destination pool is always a Pumpswap pool.
func DecodeMigrateEvent(payload []byte) (MigrateEvent, error) {
	r := binreader.New(payload)
	var ev MigrateEvent
	var err error

	if ev.User, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.Mint, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.MintAmount, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.SOLAmount, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.PoolMigrateFee, err = r.ReadU64(); err != nil {
		return ev, err
	}
	if ev.BondingCurve, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	if ev.Timestamp, err = r.ReadI64(); err != nil {
		return ev, err
	}
	if ev.Timestamp < 0 {
		ev.Timestamp = 0
	}
	if ev.Pool, err = r.ReadPubkey(); err != nil {
		return ev, err
	}
	return ev, nil
}
