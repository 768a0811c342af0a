package debounce

import "time"

// DefaultInterval is the quiet period used when none is given.
const DefaultInterval = 200 * time.Millisecond

// Debouncer rate-bounds search-as-you-type lookups: a value is emitted only
// after the input has been quiet for the interval, and a value equal to the
// last emitted one is suppressed.
type Debouncer struct {
	interval time.Duration
	in       chan string
	out      chan string
}

func New(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d := &Debouncer{
		interval: interval,
		in:       make(chan string, 16),
		out:      make(chan string, 16),
	}
	go d.run()
	return d
}

func (d *Debouncer) run() {
	var (
		timerC  <-chan time.Time
		pending string
		waiting bool
		last    string
		emitted bool
	)
	for {
		select {
		case v, ok := <-d.in:
			if !ok {
				close(d.out)
				return
			}
			pending = v
			waiting = true
			timerC = time.After(d.interval)
		case <-timerC:
			timerC = nil
			if waiting && (!emitted || pending != last) {
				d.out <- pending
				last = pending
				emitted = true
			}
			waiting = false
		}
	}
}

// Send feeds one raw input value; only the last value of a burst survives.
func (d *Debouncer) Send(v string) {
	d.in <- v
}

// C delivers the debounced values. It is closed after Close.
func (d *Debouncer) C() <-chan string {
	return d.out
}

// Close stops the debouncer; buffered input is dropped.
func (d *Debouncer) Close() {
	close(d.in)
}
