package window

import (
	"image"
	_ "image/png" // sheet decoder
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/skunk-squad/internal/core"
)

// Art loads sprite sheets from Root/<key>.png on first use. Missing sheets
// are remembered so the host falls back to flat rectangles.
type Art struct {
	Root   string
	sheets map[string]*ebiten.Image
}

// NewArt returns an Art reading from root. An empty root disables sheets.
func NewArt(root string) *Art {
	return &Art{Root: root, sheets: make(map[string]*ebiten.Image)}
}

// Frame returns the source region of a sheet, or nil.
func (a *Art) Frame(key string, src core.Rect) *ebiten.Image {
	if a == nil || a.Root == "" || key == "" || src.W <= 0 || src.H <= 0 {
		return nil
	}
	sheet, seen := a.sheets[key]
	if !seen {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(a.Root, key+".png"))
		if err != nil {
			img = nil
		}
		a.sheets[key] = img
		sheet = img
	}
	if sheet == nil {
		return nil
	}
	r := image.Rect(src.X, src.Y, src.X+src.W, src.Y+src.H).Intersect(sheet.Bounds())
	if r.Empty() {
		return nil
	}
	return sheet.SubImage(r).(*ebiten.Image)
}
