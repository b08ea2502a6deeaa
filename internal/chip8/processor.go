package chip8

import (
	"fmt"
	"math/rand/v2"
)

// CHIP-8 memory layout and machine dimensions.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Font table (16 glyphs, 5 bytes each)
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xBFF: Program area accepted by Load
//	0xC00-0xFFF: Free memory usable by programs
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the address programs are loaded to and the entry point.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program Load accepts. This is a fixed
	// limit and not derived from the free memory above ProgramStart.
	MaxProgramSize = 0x0A00

	// RegisterCount is the number of general-purpose V registers.
	RegisterCount = 16

	// FlagRegister is the index of VF.
	FlagRegister = 0xF

	// StackSize is the maximum call depth.
	StackSize = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16
)

// Processor contains the complete state of a CHIP-8 virtual machine.
// It is not safe for concurrent use, the driver owns it exclusively.
type Processor struct {
	pc     uint16
	index  uint16
	v      [RegisterCount]uint8
	memory [MemorySize]byte

	stack [StackSize]uint16
	sp    int // number of used stack entries

	delayTimer uint8
	soundTimer uint8

	framebuffer  Framebuffer
	displayDirty bool

	keys [KeyCount]bool

	random func() uint8
}

// New returns a processor in the reset state with the font table installed.
func New() *Processor {
	p := &Processor{
		random: randomByte,
	}
	p.Reset()
	return p
}

// Reset returns the processor to the state New returns it in. The random
// source is kept.
func (p *Processor) Reset() {
	random := p.random
	*p = Processor{
		pc:     ProgramStart,
		random: random,
	}
	copy(p.memory[FontAddress:], fontSet[:])
}

// Load copies the program to memory starting at ProgramStart.
// Programs larger than MaxProgramSize are rejected without modifying memory.
func (p *Processor) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceeds maximum of %d bytes", ErrProgramSize, len(program), MaxProgramSize)
	}
	copy(p.memory[ProgramStart:], program)
	return nil
}

// Cycle fetches, decodes and executes a single instruction. A failing
// instruction leaves the processor state unchanged, including the program
// counter which keeps pointing at the failing instruction.
func (p *Processor) Cycle() error {
	address := p.pc
	word, err := p.fetch()
	if err != nil {
		return err
	}
	if err := p.execute(decode(word)); err != nil {
		p.pc = address
		return err
	}
	return nil
}

// SetRandom replaces the source of random bytes used by the RND instruction.
func (p *Processor) SetRandom(fn func() uint8) {
	p.random = fn
}

// PC returns the program counter.
func (p *Processor) PC() uint16 {
	return p.pc
}

// Index returns the index register I.
func (p *Processor) Index() uint16 {
	return p.index
}

// Register returns the value of register V0-VF. The index is masked to
// the valid register range.
func (p *Processor) Register(i int) uint8 {
	return p.v[i&0xF]
}

// StackDepth returns the number of return addresses on the call stack.
func (p *Processor) StackDepth() int {
	return p.sp
}

// ReadMemory returns the byte at the given address, masked to the address space.
func (p *Processor) ReadMemory(address uint16) byte {
	return p.memory[address%MemorySize]
}

// push stores a return address on the call stack.
func (p *Processor) push(address uint16) error {
	if p.sp == StackSize {
		return ErrStackOverflow
	}
	p.stack[p.sp] = address
	p.sp++
	return nil
}

// pop removes the most recent return address from the call stack.
func (p *Processor) pop() (uint16, error) {
	if p.sp == 0 {
		return 0, ErrStackEmpty
	}
	p.sp--
	return p.stack[p.sp], nil
}

func randomByte() uint8 {
	return uint8(rand.UintN(256))
}
