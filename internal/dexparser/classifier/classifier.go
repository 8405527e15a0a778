// Package classifier implements the InstructionClassifier (spec §4.4): it
// flattens outer and inner instructions into one ordered list tagged by
// (outer_index, inner_index?) and indexes them by owning program.
package classifier

import (
	"bytes"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser/adapter"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/registry"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

// Classifier indexes a transaction's instructions by owning program,
// preserving first-seen program order.
type Classifier struct {
	flat         []types.ClassifiedInstruction
	byProgram    map[string][]types.ClassifiedInstruction
	programOrder []string
	seenPrograms map[string]struct{}
}

// New walks the adapter's outer instructions, then every inner block in
// encounter order, building the classified list and per-program index.
func New(a *adapter.Adapter) *Classifier {
	c := &Classifier{
		byProgram:    make(map[string][]types.ClassifiedInstruction),
		seenPrograms: make(map[string]struct{}),
	}

	for outerIdx, ix := range a.Instructions() {
		c.append(ix, outerIdx, nil)
	}
	for _, group := range a.InnerInstructions() {
		for innerIdx, ix := range group.Instructions {
			ii := innerIdx
			c.append(ix, group.Index, &ii)
		}
	}
	return c
}

func (c *Classifier) append(ix types.SolanaInstruction, outerIdx int, innerIdx *int) {
	if ix.ProgramID == "" {
		return
	}
	ci := types.ClassifiedInstruction{
		ProgramID:   ix.ProgramID,
		OuterIndex:  outerIdx,
		InnerIndex:  innerIdx,
		Instruction: ix,
	}
	c.flat = append(c.flat, ci)
	c.byProgram[ix.ProgramID] = append(c.byProgram[ix.ProgramID], ci)
	if _, ok := c.seenPrograms[ix.ProgramID]; !ok {
		c.seenPrograms[ix.ProgramID] = struct{}{}
		c.programOrder = append(c.programOrder, ix.ProgramID)
	}
}

// GetAllProgramIDs returns every program ID seen, in first-appearance
// order, with system/skip programs filtered out (spec §4.2).
func (c *Classifier) GetAllProgramIDs() []string {
	out := make([]string, 0, len(c.programOrder))
	for _, id := range c.programOrder {
		if registry.IsSystemOrSkip(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// GetInstructions returns all classified instructions for programID, in
// encounter order.
func (c *Classifier) GetInstructions(programID string) []types.ClassifiedInstruction {
	return c.byProgram[programID]
}

// GetMultiInstructions concatenates GetInstructions results in the order
// programIDs was given.
func (c *Classifier) GetMultiInstructions(programIDs []string) []types.ClassifiedInstruction {
	var out []types.ClassifiedInstruction
	for _, id := range programIDs {
		out = append(out, c.byProgram[id]...)
	}
	return out
}

// GetInstructionByDiscriminator returns the first classified instruction
// (among the given slice) whose decoded data starts with prefix.
func GetInstructionByDiscriminator(instructions []types.ClassifiedInstruction, prefix []byte) (types.ClassifiedInstruction, bool) {
	for _, ci := range instructions {
		if bytes.HasPrefix(ci.Instruction.Data, prefix) {
			return ci, true
		}
	}
	return types.ClassifiedInstruction{}, false
}

// Flatten returns every classified instruction in encounter order.
func (c *Classifier) Flatten() []types.ClassifiedInstruction { return c.flat }
