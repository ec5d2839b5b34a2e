package pool

// Ring 固定容量环形池
//
// Acquire 为 O(1)：写入游标处的槽位并推进游标，到达末尾后回绕。
// 负载过高时会直接覆盖仍在显示的旧元素，这是可以接受的视觉取舍。
type Ring[T any, P Slot[T]] struct {
	items  []P
	cursor int
}

// NewRing 创建容量为 capacity 的环形池（capacity 至少为 1）
func NewRing[T any, P Slot[T]](capacity int) *Ring[T, P] {
	if capacity < 1 {
		capacity = 1
	}
	r := &Ring[T, P]{items: make([]P, capacity)}
	for i := range r.items {
		r.items[i] = P(new(T))
	}
	return r
}

// Acquire 覆盖游标处的槽位并标记为激活
func (r *Ring[T, P]) Acquire(value T) P {
	item := r.items[r.cursor]
	*item = value
	item.SetActive(true)
	r.cursor++
	if r.cursor == len(r.items) {
		r.cursor = 0
	}
	return item
}

// Each 按槽位顺序遍历激活元素
func (r *Ring[T, P]) Each(fn func(item P)) {
	for _, item := range r.items {
		if item.IsActive() {
			fn(item)
		}
	}
}

// ActiveCount 返回激活槽位数量
func (r *Ring[T, P]) ActiveCount() int {
	n := 0
	for _, item := range r.items {
		if item.IsActive() {
			n++
		}
	}
	return n
}

// Clear 停用全部槽位并重置游标
func (r *Ring[T, P]) Clear() {
	for _, item := range r.items {
		item.SetActive(false)
	}
	r.cursor = 0
}

// Cap 返回固定容量
func (r *Ring[T, P]) Cap() int {
	return len(r.items)
}
