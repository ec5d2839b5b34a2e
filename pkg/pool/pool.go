// Package pool 提供短生命周期实体（弹丸、粒子）的槽位复用容器
//
// 两种容器：
//   - Pool: 可增长对象池，Acquire 返回第一个空闲槽位，全部占用时追加新槽位，永不收缩
//   - Ring: 固定容量环形池，Acquire 覆盖游标处的槽位（即最早分配的槽位）
//
// 两者都不会返回错误，也不要求调用方做容量检查。
package pool

// Slot 池元素约束：必须是结构体指针，且能读写激活状态
type Slot[T any] interface {
	*T
	IsActive() bool
	SetActive(active bool)
}

// Pool 可增长对象池
//
// 槽位逐个分配在堆上，指针在池的生命周期内保持稳定，
// 因此调用方可以跨帧持有 Acquire 返回的指针（在 Release 之前）。
type Pool[T any, P Slot[T]] struct {
	items []P
}

// NewPool 创建对象池并预分配 initial 个空闲槽位
func NewPool[T any, P Slot[T]](initial int) *Pool[T, P] {
	p := &Pool[T, P]{items: make([]P, 0, initial)}
	for i := 0; i < initial; i++ {
		p.items = append(p.items, P(new(T)))
	}
	return p
}

// Acquire 取得一个槽位并用 value 覆盖其全部字段，随后标记为激活
//
// 参数：
//   - value: 调用方提供的初始值（其中的激活标志会被覆盖为 true）
//
// 返回：
//   - P: 槽位指针
func (p *Pool[T, P]) Acquire(value T) P {
	for _, item := range p.items {
		if !item.IsActive() {
			*item = value
			item.SetActive(true)
			return item
		}
	}

	item := P(new(T))
	*item = value
	item.SetActive(true)
	p.items = append(p.items, item)
	return item
}

// Release 停用槽位，内存留待复用
func (p *Pool[T, P]) Release(item P) {
	if item != nil {
		item.SetActive(false)
	}
}

// ReleaseAll 停用全部槽位
func (p *Pool[T, P]) ReleaseAll() {
	for _, item := range p.items {
		item.SetActive(false)
	}
}

// Each 按槽位顺序遍历激活元素
func (p *Pool[T, P]) Each(fn func(item P)) {
	for _, item := range p.items {
		if item.IsActive() {
			fn(item)
		}
	}
}

// ActiveCount 返回激活槽位数量
func (p *Pool[T, P]) ActiveCount() int {
	n := 0
	for _, item := range p.items {
		if item.IsActive() {
			n++
		}
	}
	return n
}

// Cap 返回已分配的槽位总数（只增不减）
func (p *Pool[T, P]) Cap() int {
	return len(p.items)
}
