package signals

// Bank is an ordered collection of independent signals, one per slot.
// Rebuilding the bank replaces every slot, dropping all listeners.
type Bank struct {
	sigs []*Signal
}

// NewBank creates a bank with n empty signals.
func NewBank(n int) *Bank {
	b := &Bank{}
	b.Rebuild(n)
	return b
}

// Rebuild replaces the bank contents with n fresh signals.
// Existing listeners are discarded, not carried over.
func (b *Bank) Rebuild(n int) {
	if n < 0 {
		n = 0
	}
	b.sigs = make([]*Signal, n)
	for i := range b.sigs {
		b.sigs[i] = New()
	}
}

// Signal returns the signal at slot i. The index must be in [0, Len()).
func (b *Bank) Signal(i int) *Signal {
	return b.sigs[i]
}

// Len returns the number of slots.
func (b *Bank) Len() int {
	return len(b.sigs)
}
