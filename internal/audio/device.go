package audio

// Transfer describes one bank-to-DAC transfer: a channel number, the bank
// memory to drain, and a completion callback.
//
// Done runs in the device's own context (an interrupt handler on hardware, a
// drain goroutine on the host). It must do minimal work and never block:
// advance a bank index, re-arm the next transfer, signal the producer.
type Transfer struct {
	Ch      int
	Samples []uint32
	Done    func()
}

// Device is the hardware sink for PCM samples: a DMA-fed DAC, or a host
// simulation of one. The player arms one transfer per bank and the device
// drains whichever channel is enabled, invoking the transfer's completion
// callback when the bank is empty.
//
// The device and its channels are a singleton resource; the player
// serializes sessions on top of this interface.
type Device interface {
	// ClockHz returns the reference clock the output rate divides down from.
	ClockHz() int

	// StartClock starts the output clock with the given divisor.
	StartClock(divisor uint32)

	// StopClock halts the output clock.
	StopClock()

	// Prepare arms a transfer descriptor on its channel without starting it.
	Prepare(t Transfer) error

	// Enable starts draining the prepared transfer on the channel.
	Enable(ch int) error

	// Disable stops the channel and discards its prepared transfer.
	Disable(ch int)
}
