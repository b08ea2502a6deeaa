package chip8

// handler executes one instruction family, selected by the highest nibble.
type handler func(p *Processor, ins instruction) error

// handlers maps the highest nibble of an instruction word to the family
// handler. Families with several instructions dispatch on the remaining
// nibbles and report an OpcodeError for unknown combinations.
var handlers = [16]handler{
	0x0: (*Processor).execSystem,
	0x1: (*Processor).execJump,
	0x2: (*Processor).execCall,
	0x3: (*Processor).execSkipEqualImmediate,
	0x4: (*Processor).execSkipNotEqualImmediate,
	0x5: (*Processor).execSkipEqualRegister,
	0x6: (*Processor).execLoadImmediate,
	0x7: (*Processor).execAddImmediate,
	0x8: (*Processor).execArithmetic,
	0x9: (*Processor).execSkipNotEqualRegister,
	0xA: (*Processor).execLoadIndex,
	0xB: (*Processor).execLoadIndexOffset,
	0xC: (*Processor).execRandom,
	0xD: (*Processor).execDraw,
	0xE: (*Processor).execKeySkip,
	0xF: (*Processor).execMisc,
}

func (p *Processor) execute(ins instruction) error {
	return handlers[ins.op](p, ins)
}

// skipIf advances the program counter past the next instruction if the
// condition is true.
func (p *Processor) skipIf(condition bool) {
	if condition {
		p.pc += opcodeSize
	}
}

// setFlagResult stores the result in Vx and the flag in VF. The flag is
// written last so that it holds when x is VF.
func (p *Processor) setFlagResult(x, result, flag uint8) {
	p.v[x] = result
	p.v[FlagRegister] = flag
}

// execSystem handles 0000 NOP, 00E0 CLS and 00EE RET.
func (p *Processor) execSystem(ins instruction) error {
	switch ins.word {
	case 0x0000:
		return nil

	case 0x00E0:
		p.clearDisplay()
		return nil

	case 0x00EE:
		address, err := p.pop()
		if err != nil {
			return err
		}
		p.pc = address
		return nil

	default:
		return &OpcodeError{Opcode: ins.word}
	}
}

// execJump handles 1nnn JP addr.
func (p *Processor) execJump(ins instruction) error {
	p.pc = ins.nnn
	return nil
}

// execCall handles 2nnn CALL addr.
func (p *Processor) execCall(ins instruction) error {
	if err := p.push(p.pc); err != nil {
		return err
	}
	p.pc = ins.nnn
	return nil
}

// execSkipEqualImmediate handles 3xnn SE Vx, byte.
func (p *Processor) execSkipEqualImmediate(ins instruction) error {
	p.skipIf(p.v[ins.x] == ins.nn)
	return nil
}

// execSkipNotEqualImmediate handles 4xnn SNE Vx, byte.
func (p *Processor) execSkipNotEqualImmediate(ins instruction) error {
	p.skipIf(p.v[ins.x] != ins.nn)
	return nil
}

// execSkipEqualRegister handles 5xy0 SE Vx, Vy.
func (p *Processor) execSkipEqualRegister(ins instruction) error {
	if ins.n != 0 {
		return &OpcodeError{Opcode: ins.word}
	}
	p.skipIf(p.v[ins.x] == p.v[ins.y])
	return nil
}

// execLoadImmediate handles 6xnn LD Vx, byte.
func (p *Processor) execLoadImmediate(ins instruction) error {
	p.v[ins.x] = ins.nn
	return nil
}

// execAddImmediate handles 7xnn ADD Vx, byte. The addition wraps and does
// not affect VF.
func (p *Processor) execAddImmediate(ins instruction) error {
	p.v[ins.x] += ins.nn
	return nil
}

// execArithmetic handles the 8xyn register operations.
func (p *Processor) execArithmetic(ins instruction) error {
	vx, vy := p.v[ins.x], p.v[ins.y]

	switch ins.n {
	case 0x0: // LD Vx, Vy
		p.v[ins.x] = vy

	case 0x1: // OR Vx, Vy
		p.v[ins.x] = vx | vy

	case 0x2: // AND Vx, Vy
		p.v[ins.x] = vx & vy

	case 0x3: // XOR Vx, Vy
		p.v[ins.x] = vx ^ vy

	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		p.setFlagResult(ins.x, uint8(sum), boolToFlag(sum > 0xFF))

	case 0x5: // SUB Vx, Vy
		p.setFlagResult(ins.x, vx-vy, boolToFlag(vx >= vy))

	case 0x6: // SHR Vx, Vy
		p.setFlagResult(ins.x, vy>>1, vy&0x01)

	case 0x7: // SUBN Vx, Vy
		p.setFlagResult(ins.x, vy-vx, boolToFlag(vy >= vx))

	case 0xE: // SHL Vx, Vy
		p.setFlagResult(ins.x, vy<<1, (vy&0x80)>>7)

	default:
		return &OpcodeError{Opcode: ins.word}
	}
	return nil
}

// execSkipNotEqualRegister handles 9xy0 SNE Vx, Vy.
func (p *Processor) execSkipNotEqualRegister(ins instruction) error {
	if ins.n != 0 {
		return &OpcodeError{Opcode: ins.word}
	}
	p.skipIf(p.v[ins.x] != p.v[ins.y])
	return nil
}

// execLoadIndex handles Annn LD I, addr.
func (p *Processor) execLoadIndex(ins instruction) error {
	p.index = ins.nnn
	return nil
}

// execLoadIndexOffset handles Bnnn. Unlike the common JP V0, addr this
// sets I to nnn + V0 and leaves the program counter alone.
func (p *Processor) execLoadIndexOffset(ins instruction) error {
	p.index = ins.nnn + uint16(p.v[0])
	return nil
}

// execRandom handles Cxnn RND Vx, byte.
func (p *Processor) execRandom(ins instruction) error {
	p.v[ins.x] = p.random() & ins.nn
	return nil
}

// execDraw handles Dxyn DRW Vx, Vy, nibble.
func (p *Processor) execDraw(ins instruction) error {
	collision, err := p.drawSprite(p.v[ins.x], p.v[ins.y], ins.n)
	if err != nil {
		return err
	}
	p.v[FlagRegister] = boolToFlag(collision)
	return nil
}

// execKeySkip handles Ex9E SKP Vx and ExA1 SKNP Vx.
func (p *Processor) execKeySkip(ins instruction) error {
	var wantPressed bool
	switch ins.nn {
	case 0x9E:
		wantPressed = true
	case 0xA1:
		wantPressed = false
	default:
		return &OpcodeError{Opcode: ins.word}
	}

	pressed, err := p.keyPressed(int(p.v[ins.x]))
	if err != nil {
		return err
	}
	p.skipIf(pressed == wantPressed)
	return nil
}

// execMisc handles the Fxnn timer, keypad and memory instructions.
func (p *Processor) execMisc(ins instruction) error {
	switch ins.nn {
	case 0x07: // LD Vx, DT
		p.v[ins.x] = p.delayTimer

	case 0x0A: // LD Vx, K
		p.waitForKey(ins.x)

	case 0x15: // LD DT, Vx
		p.delayTimer = p.v[ins.x]

	case 0x18: // LD ST, Vx
		p.soundTimer = p.v[ins.x]

	case 0x1E: // ADD I, Vx
		p.index += uint16(p.v[ins.x])

	case 0x29: // LD F, Vx
		p.index = FontAddress + uint16(p.v[ins.x]&0xF)*glyphSize

	case 0x33: // LD B, Vx
		return p.storeBCD(p.v[ins.x])

	case 0x55: // LD [I], Vx
		return p.storeRegisters(ins.x)

	case 0x65: // LD Vx, [I]
		return p.loadRegisters(ins.x)

	default:
		return &OpcodeError{Opcode: ins.word}
	}
	return nil
}

// waitForKey stores the lowest pressed key in Vx. If no key is pressed the
// program counter is moved back so that the next cycle executes the
// instruction again.
func (p *Processor) waitForKey(x uint8) {
	for key, pressed := range p.keys {
		if pressed {
			p.v[x] = uint8(key)
			return
		}
	}
	p.pc -= opcodeSize
}

// storeBCD writes the decimal digits of value to memory at I, I+1 and I+2.
func (p *Processor) storeBCD(value uint8) error {
	if err := p.checkIndexRange(2); err != nil {
		return err
	}
	p.memory[p.index] = value / 100
	p.memory[p.index+1] = value / 10 % 10
	p.memory[p.index+2] = value % 10
	return nil
}

// storeRegisters copies V0-Vx to memory starting at I and advances I.
func (p *Processor) storeRegisters(x uint8) error {
	if err := p.checkIndexRange(uint16(x)); err != nil {
		return err
	}
	copy(p.memory[p.index:], p.v[:x+1])
	p.index += uint16(x) + 1
	return nil
}

// loadRegisters copies memory starting at I to V0-Vx and advances I.
func (p *Processor) loadRegisters(x uint8) error {
	if err := p.checkIndexRange(uint16(x)); err != nil {
		return err
	}
	copy(p.v[:x+1], p.memory[p.index:])
	p.index += uint16(x) + 1
	return nil
}

// checkIndexRange returns an error if the address I+offset is outside of
// the address space.
func (p *Processor) checkIndexRange(offset uint16) error {
	last := int(p.index) + int(offset)
	if last >= MemorySize {
		return &AddressError{Kind: ErrIndexRegister, Address: uint16(last)}
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
