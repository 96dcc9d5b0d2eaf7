package component

// Sprite names an image under the asset root. NineSlice sprites are
// stretched to Width x Height by tiling their borders.
type Sprite struct {
	Path      string
	Width     float64
	Height    float64
	NineSlice bool
	Hidden    bool
}

var SpriteComponent = NewComponent[Sprite]()
