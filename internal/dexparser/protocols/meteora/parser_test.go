package meteora

import (
	"encoding/json"
	"testing"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func ptrInt(v int) *int { return &v }

func testAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()
	raw := &adapter.RawTransaction{
		Slot:      11,
		Signature: "sig-meteora",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{"signer", registry.MeteoraProgramID},
			Header:      adapter.RawMessageHeader{NumRequiredSignatures: 1},
			Instructions: []adapter.RawInstruction{
				{ProgramIDIndex: ptrInt(1), Accounts: json.RawMessage(`[0]`), Data: json.RawMessage(`""`)},
			},
		},
		Meta: adapter.RawMeta{Err: json.RawMessage(`null`)},
	}
	a, err := adapter.New(raw, types.ParseConfig{})
	if err != nil {
		t.Fatalf("adapter.New error: %v", err)
	}
	return a
}

func TestParseLiquidityFallsBackToWeakRemoveForMeteoraFamily(t *testing.T) {
	a := testAdapter(t)
	ci := types.ClassifiedInstruction{
		ProgramID:  registry.MeteoraProgramID,
		OuterIndex: 0,
		Instruction: types.SolanaInstruction{
			ProgramID: registry.MeteoraProgramID,
			Accounts:  []string{"mintA", "mintB"},
			Data:      []byte{9, 9, 9, 9, 9, 9, 9, 9}, // no known signal, no mint/burn transfer
		},
	}
	p := New(a, []types.ClassifiedInstruction{ci}, nil)
	events := p.ParseLiquidity()
	if len(events) != 1 {
		t.Fatalf("ParseLiquidity() returned %d events, want 1 (weak-remove fallback)", len(events))
	}
	if events[0].EventType != types.PoolEventRemove {
		t.Fatalf("EventType = %v, want RemoveLiquidity", events[0].EventType)
	}
}

func TestParseLiquiditySkipsUnclassifiedNonMeteoraInstructions(t *testing.T) {
	a := testAdapter(t)
	ci := types.ClassifiedInstruction{
		ProgramID:   "otherProgram",
		OuterIndex:  0,
		Instruction: types.SolanaInstruction{ProgramID: "otherProgram", Data: []byte{9, 9, 9, 9, 9, 9, 9, 9}},
	}
	p := New(a, []types.ClassifiedInstruction{ci}, nil)
	if events := p.ParseLiquidity(); len(events) != 0 {
		t.Fatalf("ParseLiquidity() = %v, want empty", events)
	}
}
