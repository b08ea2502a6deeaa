package chip8

import (
	"fmt"
	"strings"
)

// State is a snapshot of the processor registers, used for diagnostics.
type State struct {
	PC         uint16
	Index      uint16
	V          [RegisterCount]uint8
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
}

// State returns a snapshot of the current register state.
func (p *Processor) State() State {
	stack := make([]uint16, p.sp)
	copy(stack, p.stack[:p.sp])

	return State{
		PC:         p.pc,
		Index:      p.index,
		V:          p.v,
		Stack:      stack,
		DelayTimer: p.delayTimer,
		SoundTimer: p.soundTimer,
	}
}

// String returns a register dump in the form
// "PC=$0200 I=$0000 DT=$00 ST=$00 V0=$00 ... VF=$00 SP=0 []".
func (s State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PC=$%04X I=$%04X DT=$%02X ST=$%02X", s.PC, s.Index, s.DelayTimer, s.SoundTimer)
	for i, value := range s.V {
		fmt.Fprintf(&sb, " V%X=$%02X", i, value)
	}

	fmt.Fprintf(&sb, " SP=%d [", len(s.Stack))
	for i, address := range s.Stack {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "$%04X", address)
	}
	sb.WriteByte(']')
	return sb.String()
}
