package signals

// Signal is a payload-free notification source with removable listeners.
// Listeners fire synchronously, in connection order. Signal is not safe
// for concurrent use; the owner serializes access.
type Signal struct {
	nextID   int
	handlers []handler
}

type handler struct {
	id int
	fn func()
}

// New creates an empty signal.
func New() *Signal {
	return &Signal{}
}

// Handle identifies one connected listener and can disconnect it.
// The zero Handle is valid and removes nothing.
type Handle struct {
	sig *Signal
	id  int
}

// Connect registers fn to run on every Emit and returns its handle.
// A nil fn is ignored and yields a no-op handle.
func (s *Signal) Connect(fn func()) Handle {
	if fn == nil {
		return Handle{}
	}
	s.nextID++
	s.handlers = append(s.handlers, handler{id: s.nextID, fn: fn})
	return Handle{sig: s, id: s.nextID}
}

// Remove disconnects the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.sig == nil {
		return
	}
	for i, hd := range h.sig.handlers {
		if hd.id == h.id {
			h.sig.handlers = append(h.sig.handlers[:i], h.sig.handlers[i+1:]...)
			return
		}
	}
}

// Emit runs all connected listeners. Connections and removals made by a
// listener take effect from the next Emit.
func (s *Signal) Emit() {
	fns := make([]func(), len(s.handlers))
	for i, hd := range s.handlers {
		fns[i] = hd.fn
	}
	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of connected listeners.
func (s *Signal) Len() int {
	return len(s.handlers)
}
