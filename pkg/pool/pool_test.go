package pool

import "testing"

type testItem struct {
	N      int
	Active bool
}

func (t *testItem) IsActive() bool        { return t.Active }
func (t *testItem) SetActive(active bool) { t.Active = active }

func TestPoolAcquireReusesFirstInactive(t *testing.T) {
	p := NewPool[testItem](3)

	a := p.Acquire(testItem{N: 1})
	b := p.Acquire(testItem{N: 2})
	p.Release(a)

	c := p.Acquire(testItem{N: 3})
	if c != a {
		t.Fatal("expected released slot to be reused")
	}
	if c.N != 3 || !c.Active {
		t.Errorf("slot not overwritten: %+v", *c)
	}
	if b.N != 2 {
		t.Errorf("unrelated slot changed: %+v", *b)
	}
	if p.Cap() != 3 {
		t.Errorf("Cap: got %d, want 3", p.Cap())
	}
}

func TestPoolGrowsWhenFull(t *testing.T) {
	p := NewPool[testItem](1)
	p.Acquire(testItem{N: 1})
	p.Acquire(testItem{N: 2})

	if p.Cap() != 2 {
		t.Fatalf("Cap: got %d, want 2", p.Cap())
	}
	if p.ActiveCount() != 2 {
		t.Errorf("ActiveCount: got %d, want 2", p.ActiveCount())
	}

	p.ReleaseAll()
	if p.ActiveCount() != 0 {
		t.Errorf("ActiveCount after ReleaseAll: got %d", p.ActiveCount())
	}
	if p.Cap() != 2 {
		t.Errorf("pool must never shrink, Cap=%d", p.Cap())
	}
}

// 反复获取/释放时同时激活数量不超过容量，且不会产生新槽位
func TestPoolCyclesStayWithinCapacity(t *testing.T) {
	const capacity = 8
	p := NewPool[testItem](capacity)
	held := make([]*testItem, 0, capacity)

	for cycle := 0; cycle < 500; cycle++ {
		if len(held) == capacity {
			for _, it := range held[:capacity/2] {
				p.Release(it)
			}
			held = append(held[:0], held[capacity/2:]...)
		}
		held = append(held, p.Acquire(testItem{N: cycle}))

		if p.ActiveCount() > capacity {
			t.Fatalf("cycle %d: %d active > capacity %d", cycle, p.ActiveCount(), capacity)
		}
	}
	if p.Cap() != capacity {
		t.Errorf("Cap: got %d, want %d", p.Cap(), capacity)
	}
}

func TestPoolEachVisitsActiveOnly(t *testing.T) {
	p := NewPool[testItem](4)
	a := p.Acquire(testItem{N: 1})
	p.Acquire(testItem{N: 2})
	p.Release(a)

	sum := 0
	p.Each(func(it *testItem) { sum += it.N })
	if sum != 2 {
		t.Errorf("Each visited wrong items, sum=%d", sum)
	}
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing[testItem](3)

	first := r.Acquire(testItem{N: 1})
	r.Acquire(testItem{N: 2})
	r.Acquire(testItem{N: 3})
	fourth := r.Acquire(testItem{N: 4})

	if fourth != first {
		t.Fatal("fourth acquire should recycle the oldest slot")
	}
	if first.N != 4 {
		t.Errorf("oldest slot should hold the new value, got %d", first.N)
	}
	if r.ActiveCount() != 3 {
		t.Errorf("ActiveCount: got %d, want 3", r.ActiveCount())
	}
	if r.Cap() != 3 {
		t.Errorf("Cap: got %d, want 3", r.Cap())
	}
}

func TestRingManyAcquiresNeverExceedCapacity(t *testing.T) {
	r := NewRing[testItem](600)
	for i := 0; i < 5000; i++ {
		r.Acquire(testItem{N: i})
	}
	if r.ActiveCount() != 600 {
		t.Errorf("ActiveCount: got %d, want 600", r.ActiveCount())
	}

	r.Clear()
	if r.ActiveCount() != 0 {
		t.Errorf("ActiveCount after Clear: got %d", r.ActiveCount())
	}
}

func TestNewRingMinimumCapacity(t *testing.T) {
	r := NewRing[testItem](0)
	if r.Cap() != 1 {
		t.Errorf("Cap: got %d, want 1", r.Cap())
	}
}
