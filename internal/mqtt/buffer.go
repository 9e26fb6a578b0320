package mqtt

import "log"

// outboxEntry holds one serialized message parked while the broker is
// unreachable.
type outboxEntry struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// outbox is a fixed-capacity FIFO of undelivered messages. When full the
// oldest entry is overwritten. Not safe for concurrent use — the caller
// must synchronize.
type outbox struct {
	entries []outboxEntry
	oldest  int // index of the oldest buffered entry
	n       int
	dropped int // overwritten since the last takeAll
}

func newOutbox(capacity int) *outbox {
	return &outbox{entries: make([]outboxEntry, capacity)}
}

func (o *outbox) add(e outboxEntry) {
	if o.n == len(o.entries) {
		o.entries[o.oldest] = e
		o.oldest = (o.oldest + 1) % len(o.entries)
		o.dropped++
		return
	}
	o.entries[(o.oldest+o.n)%len(o.entries)] = e
	o.n++
}

// takeAll returns the buffered entries oldest first and empties the
// outbox.
func (o *outbox) takeAll() []outboxEntry {
	if o.n == 0 {
		return nil
	}
	if o.dropped > 0 {
		log.Printf("mqtt: outbox overflowed, %d oldest messages dropped", o.dropped)
	}

	out := make([]outboxEntry, o.n)
	for i := range out {
		out[i] = o.entries[(o.oldest+i)%len(o.entries)]
	}
	o.oldest = 0
	o.n = 0
	o.dropped = 0
	return out
}

func (o *outbox) size() int { return o.n }
