package components

// ProjectileComponent 弹丸实体数据
//
// 弹丸由对象池持有，发射时复用空闲槽位，命中或离开场地后停用。
// 这是纯数据结构，除对象池所需的激活状态访问器外不包含逻辑。
type ProjectileComponent struct {
	ID uint64

	// 位置与速度（像素，像素/参考帧）
	X, Y   float64
	VX, VY float64

	Color  Color
	Radius float64
	Active bool
}

// IsActive 返回槽位是否处于激活状态
func (p *ProjectileComponent) IsActive() bool { return p.Active }

// SetActive 设置槽位激活状态
func (p *ProjectileComponent) SetActive(active bool) { p.Active = active }
