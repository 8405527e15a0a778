package classifier

import (
	"encoding/json"
	"testing"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func buildAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()
	raw := &adapter.RawTransaction{
		Slot:      1,
		Signature: "sig",
		Version:   json.RawMessage(`"legacy"`),
		Message: adapter.RawMessage{
			AccountKeys: []string{"signer", registry.PumpfunProgramID, registry.SystemProgramID},
			Header:      adapter.RawMessageHeader{NumRequiredSignatures: 1},
			Instructions: []adapter.RawInstruction{
				{ProgramIDIndex: intPtr(2), Accounts: json.RawMessage(`[0]`), Data: json.RawMessage(`""`)},
				{ProgramIDIndex: intPtr(1), Accounts: json.RawMessage(`[0]`), Data: json.RawMessage(`""`)},
			},
		},
		InnerInstructions: []adapter.RawInnerInstructionGroup{
			{
				Index: 1,
				Instructions: []adapter.RawInstruction{
					{ProgramIDIndex: intPtr(1), Accounts: json.RawMessage(`[0]`), Data: json.RawMessage(`""`)},
				},
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

func intPtr(v int) *int { return &v }

func TestGetAllProgramIDsFiltersSystem(t *testing.T) {
	c := New(buildAdapter(t))
	ids := c.GetAllProgramIDs()
	if len(ids) != 1 || ids[0] != registry.PumpfunProgramID {
		t.Fatalf("GetAllProgramIDs() = %v", ids)
	}
}

func TestGetInstructionsOrderedByEncounter(t *testing.T) {
	c := New(buildAdapter(t))
	instrs := c.GetInstructions(registry.PumpfunProgramID)
	if len(instrs) != 2 {
		t.Fatalf("GetInstructions() len = %d, want 2", len(instrs))
	}
	if instrs[0].OuterIndex != 1 || instrs[0].InnerIndex != nil {
		t.Fatalf("first instruction = %+v", instrs[0])
	}
	if instrs[1].OuterIndex != 1 || instrs[1].InnerIndex == nil || *instrs[1].InnerIndex != 0 {
		t.Fatalf("second instruction = %+v", instrs[1])
	}
}

func TestFlattenIncludesEverything(t *testing.T) {
	c := New(buildAdapter(t))
	if len(c.Flatten()) != 3 {
		t.Fatalf("Flatten() len = %d, want 3", len(c.Flatten()))
	}
}
