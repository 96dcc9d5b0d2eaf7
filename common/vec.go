package common

// Vec2 is a point or direction in world units. The world is y-up.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec3 carries a render order in Z.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Rect is an axis-aligned box given by its center and full size.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

func (r Rect) HalfExtents() Vec2 {
	return Vec2{X: r.W / 2, Y: r.H / 2}
}

func (r Rect) Min() Vec2 {
	return Vec2{X: r.X - r.W/2, Y: r.Y - r.H/2}
}

func (r Rect) Max() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Gravity is the base world gravity in units per second squared. Bodies
// scale it by their gravity scale.
const Gravity = -981.0
