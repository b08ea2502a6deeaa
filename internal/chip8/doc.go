// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine Model
//
// A Processor owns the complete machine state:
//   - 4KB of memory (0x000-0xFFF), the font table at FontAddress and the
//     loaded program starting at ProgramStart
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - the 16-bit index register I and the program counter
//   - a call stack with room for StackSize return addresses
//   - delay and sound timers, decremented by TickTimers
//   - a 64x32 monochrome framebuffer and a 16 key hexadecimal keypad
//
// # Execution
//
// The driver calls Cycle to fetch, decode and execute one instruction and
// TickTimers at 60Hz, independent of the instruction rate. After cycles that
// changed the screen DisplayDirty reports true until ClearDisplayDirty is
// called.
//
// Usage example:
//
//	proc := chip8.New()
//	if err := proc.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := proc.Cycle(); err != nil {
//			return err
//		}
//		if proc.DisplayDirty() {
//			render(proc.Framebuffer())
//			proc.ClearDisplayDirty()
//		}
//	}
//
// # Errors
//
// All failures are returned as values that unwrap to one of the exported
// Err sentinels. The processor never retries or masks a failure.
package chip8
