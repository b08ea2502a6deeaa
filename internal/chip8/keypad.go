package chip8

// SetKey latches the pressed state of a keypad key 0x0-0xF.
func (p *Processor) SetKey(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return &KeyIndexError{Key: key}
	}
	p.keys[key] = pressed
	return nil
}

// keyPressed returns the latched state of a key referenced by a register.
func (p *Processor) keyPressed(key int) (bool, error) {
	if key >= KeyCount {
		return false, &KeyIndexError{Key: key}
	}
	return p.keys[key], nil
}
