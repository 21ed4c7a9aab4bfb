package wizard

import "sync"

// Disabler is the "components disabled" handle shared between the wizard and
// child widgets that run async side effects (image uploads).
//
// Each Raise returns its own clear function. Navigation stays disabled while
// at least one holder has not cleared. Clearing twice is a no-op, so a holder
// can never release someone else's hold.
type Disabler struct {
	mu       sync.Mutex
	holders  int
	onChange func(raised bool)
}

// NewDisabler creates a Disabler. onChange, if set, is called whenever the
// raised state flips.
func NewDisabler(onChange func(raised bool)) *Disabler {
	return &Disabler{onChange: onChange}
}

// Raise disables navigation until the returned function is called.
func (d *Disabler) Raise() (clear func()) {
	d.mu.Lock()
	d.holders++
	flipped := d.holders == 1
	d.mu.Unlock()

	if flipped {
		d.notify(true)
	}

	var once sync.Once
	return func() {
		once.Do(d.release)
	}
}

func (d *Disabler) release() {
	d.mu.Lock()
	if d.holders == 0 {
		d.mu.Unlock()
		return
	}
	d.holders--
	flipped := d.holders == 0
	d.mu.Unlock()

	if flipped {
		d.notify(false)
	}
}

// Raised reports whether any holder currently disables navigation.
// A nil Disabler is never raised.
func (d *Disabler) Raised() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.holders > 0
}

func (d *Disabler) notify(raised bool) {
	if d.onChange != nil {
		d.onChange(raised)
	}
}
