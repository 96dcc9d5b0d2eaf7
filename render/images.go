package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/puff/assets"
)

// Nine-slice borders of the tile art, in pixels.
const (
	tileBorderLeft   = 18
	tileBorderRight  = 15
	tileBorderTop    = 38
	tileBorderBottom = 11
)

// Images caches decoded images by asset path. The cache is dropped when
// the library's override flag flips.
type Images struct {
	library    *assets.Library
	generation int

	images map[string]*ebiten.Image
	tiles  map[string]*Tile
	failed map[string]bool
}

func NewImages(library *assets.Library) *Images {
	im := &Images{library: library}
	im.reset()
	return im
}

func (im *Images) reset() {
	im.images = make(map[string]*ebiten.Image)
	im.tiles = make(map[string]*Tile)
	im.failed = make(map[string]bool)
	if im.library != nil {
		im.generation = im.library.Generation()
	}
}

func (im *Images) sync() {
	if im.library != nil && im.library.Generation() != im.generation {
		im.reset()
	}
}

// Get returns the image at path, or nil when it is missing or does not
// decode. Failures are remembered until the next reset.
func (im *Images) Get(path string) *ebiten.Image {
	if path == "" || im.library == nil {
		return nil
	}
	im.sync()
	if img, ok := im.images[path]; ok {
		return img
	}
	if im.failed[path] {
		return nil
	}
	img, err := im.load(path)
	if err != nil {
		im.failed[path] = true
		if !assets.IsMissing(err) {
			log.Printf("render: %v", err)
		}
		return nil
	}
	im.images[path] = img
	return img
}

func (im *Images) load(path string) (*ebiten.Image, error) {
	data, err := im.library.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(decoded), nil
}

// Tile returns the tile image at path cut along the tile borders.
func (im *Images) Tile(path string) *Tile {
	im.sync()
	if t, ok := im.tiles[path]; ok {
		return t
	}
	img := im.Get(path)
	if img == nil {
		return nil
	}
	b := img.Bounds()
	cols, rows := sliceWidths(b.Dx(), b.Dy())
	t := &Tile{img: img, cols: cols, rows: rows}
	im.tiles[path] = t
	return t
}

// sliceWidths splits an image of w x h pixels into the nine-slice
// column and row sizes. Images too small for the borders are all centre.
func sliceWidths(w, h int) ([3]int, [3]int) {
	if w <= tileBorderLeft+tileBorderRight || h <= tileBorderTop+tileBorderBottom {
		return [3]int{0, w, 0}, [3]int{0, h, 0}
	}
	return [3]int{tileBorderLeft, w - tileBorderLeft - tileBorderRight, tileBorderRight},
		[3]int{tileBorderTop, h - tileBorderTop - tileBorderBottom, tileBorderBottom}
}

// Tile is tile art cut into nine parts. Corners are drawn once, edges
// repeat along their length and the centre repeats both ways.
type Tile struct {
	img  *ebiten.Image
	cols [3]int
	rows [3]int
}

// Draw covers the w x h pixel area whose top-left corner is (x, y).
func (t *Tile) Draw(dst *ebiten.Image, x, y float64, w, h int) {
	cols := spans(t.cols, w)
	for _, r := range spans(t.rows, h) {
		for _, c := range cols {
			part := t.img.SubImage(image.Rect(c.src, r.src, c.src+c.n, r.src+r.n)).(*ebiten.Image)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(x+float64(c.dst), y+float64(r.dst))
			dst.DrawImage(part, op)
		}
	}
}

// span copies n source pixels starting at src to dst along one axis.
type span struct {
	src, dst, n int
}

// spans lays out one axis of size pixels: the leading border, the middle
// repeated until the trailing border, then the trailing border. When
// size cannot hold both borders they share it and the middle is dropped.
func spans(parts [3]int, size int) []span {
	lead, mid, trail := parts[0], parts[1], parts[2]
	total := lead + mid + trail
	if lead+trail >= size {
		if lead+trail == 0 {
			return nil
		}
		l := size * lead / (lead + trail)
		var out []span
		if l > 0 {
			out = append(out, span{src: 0, dst: 0, n: l})
		}
		if size-l > 0 {
			out = append(out, span{src: total - (size - l), dst: l, n: size - l})
		}
		return out
	}

	var out []span
	if lead > 0 {
		out = append(out, span{src: 0, dst: 0, n: lead})
	}
	end := size - trail
	for pos := lead; mid > 0 && pos < end; {
		n := min(mid, end-pos)
		out = append(out, span{src: lead, dst: pos, n: n})
		pos += n
	}
	if trail > 0 {
		out = append(out, span{src: lead + mid, dst: end, n: trail})
	}
	return out
}
