package mqtt

import (
	"fmt"
	"testing"
)

func entry(i int) outboxEntry {
	return outboxEntry{topic: Topic, payload: []byte(fmt.Sprintf("m%d", i))}
}

func TestOutboxFIFO(t *testing.T) {
	o := newOutbox(4)
	if o.size() != 0 {
		t.Errorf("new outbox size = %d, want 0", o.size())
	}

	o.add(entry(1))
	o.add(entry(2))
	o.add(entry(3))
	if o.size() != 3 {
		t.Errorf("size = %d, want 3", o.size())
	}

	out := o.takeAll()
	if len(out) != 3 {
		t.Fatalf("took %d, want 3", len(out))
	}
	for i, e := range out {
		want := fmt.Sprintf("m%d", i+1)
		if string(e.payload) != want {
			t.Errorf("take[%d] = %q, want %q (oldest first)", i, e.payload, want)
		}
	}
	if o.size() != 0 {
		t.Errorf("size after takeAll = %d, want 0", o.size())
	}
}

func TestOutboxTakeAllEmpty(t *testing.T) {
	o := newOutbox(4)
	if out := o.takeAll(); out != nil {
		t.Errorf("takeAll on empty outbox = %v, want nil", out)
	}
}

func TestOutboxOverflowDropsOldest(t *testing.T) {
	o := newOutbox(3)
	for i := 1; i <= 5; i++ {
		o.add(entry(i))
	}
	if o.size() != 3 {
		t.Fatalf("size = %d, want capacity 3", o.size())
	}

	out := o.takeAll()
	want := []string{"m3", "m4", "m5"}
	for i, w := range want {
		if string(out[i].payload) != w {
			t.Errorf("take[%d] = %q, want %q", i, out[i].payload, w)
		}
	}
}

func TestOutboxReusableAfterTakeAll(t *testing.T) {
	o := newOutbox(2)
	o.add(entry(1))
	o.add(entry(2))
	o.add(entry(3)) // overflows
	o.takeAll()

	o.add(entry(9))
	out := o.takeAll()
	if len(out) != 1 || string(out[0].payload) != "m9" {
		t.Errorf("after takeAll: got %v, want single m9", out)
	}
}

func TestOutboxPreservesAttributes(t *testing.T) {
	o := newOutbox(2)
	o.add(outboxEntry{topic: TopicSystem, qos: 1, retained: true, payload: []byte("x")})

	out := o.takeAll()
	if out[0].topic != TopicSystem || out[0].qos != 1 || !out[0].retained {
		t.Errorf("attributes lost in outbox: %+v", out[0])
	}
}
