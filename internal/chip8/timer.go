package chip8

// TickTimers decrements the delay and sound timers by one if they are not
// zero yet. It is called by the driver at 60Hz, independent of Cycle.
func (p *Processor) TickTimers() {
	if p.delayTimer > 0 {
		p.delayTimer--
	}
	if p.soundTimer > 0 {
		p.soundTimer--
	}
}

// DelayTimer returns the current value of the delay timer.
func (p *Processor) DelayTimer() uint8 {
	return p.delayTimer
}

// SoundTimer returns the current value of the sound timer.
func (p *Processor) SoundTimer() uint8 {
	return p.soundTimer
}

// SoundActive returns whether a tone should be playing. The processor does
// not produce any audio itself.
func (p *Processor) SoundActive() bool {
	return p.soundTimer > 0
}
