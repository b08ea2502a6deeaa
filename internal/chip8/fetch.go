package chip8

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// instruction is a decoded instruction word.
type instruction struct {
	word uint16
	op   uint8  // highest nibble, selects the instruction family
	x    uint8  // register index in the second nibble
	y    uint8  // register index in the third nibble
	n    uint8  // lowest nibble
	nn   uint8  // lowest byte
	nnn  uint16 // lowest 12 bits
}

// fetch reads the big-endian instruction word at the program counter and
// advances the program counter past it. Nothing is modified on failure.
func (p *Processor) fetch() (uint16, error) {
	if int(p.pc)+1 >= MemorySize {
		return 0, &AddressError{Kind: ErrProgramCounter, Address: p.pc}
	}

	word := uint16(p.memory[p.pc])<<8 | uint16(p.memory[p.pc+1])
	p.pc += opcodeSize
	return word, nil
}

// NextInstruction returns the address and word of the instruction the next
// Cycle will execute, without modifying any state. ok is false if the
// program counter is out of bounds.
func (p *Processor) NextInstruction() (address, word uint16, ok bool) {
	if int(p.pc)+1 >= MemorySize {
		return p.pc, 0, false
	}
	return p.pc, uint16(p.memory[p.pc])<<8 | uint16(p.memory[p.pc+1]), true
}

// decode splits an instruction word into its nibbles and operand fields.
func decode(word uint16) instruction {
	return instruction{
		word: word,
		op:   uint8(word >> 12),
		x:    uint8(word>>8) & 0xF,
		y:    uint8(word>>4) & 0xF,
		n:    uint8(word) & 0xF,
		nn:   uint8(word),
		nnn:  word & 0x0FFF,
	}
}
