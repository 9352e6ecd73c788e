package picker

import "sync"

// Outside broadcasts "interaction happened outside any picker" to every
// open picker. One Outside is shared by all rows of a table; each picker
// subscribes while open and releases its subscription when it closes.
type Outside struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewOutside creates an empty notifier.
func NewOutside() *Outside {
	return &Outside{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a function that removes it. The
// returned cancel is safe to call more than once.
func (o *Outside) Subscribe(fn func()) (cancel func()) {
	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// Notify calls every current subscriber. Subscribers may cancel their own
// subscription from inside the callback.
func (o *Outside) Notify() {
	o.mu.Lock()
	fns := make([]func(), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len reports the number of live subscriptions.
func (o *Outside) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
