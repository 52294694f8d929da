package window

import (
	"testing"

	"github.com/vovakirdan/skunk-squad/internal/core"
)

func TestNewHostDefaults(t *testing.T) {
	h := NewHost(nil, Options{})
	if w, ht := h.Layout(0, 0); w != 1280 || ht != 720 {
		t.Errorf("Layout() = (%d, %d), expected (1280, 720)", w, ht)
	}
	if h.opts.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", h.opts.TickRate)
	}
	if h.opts.Title == "" || h.opts.Logger == nil {
		t.Error("NewHost() left title or logger unset")
	}
}

func TestArtWithoutRoot(t *testing.T) {
	a := NewArt("")
	if img := a.Frame("player_idle", core.NewRect(0, 0, 32, 32)); img != nil {
		t.Error("Frame() with empty root returned an image")
	}

	var nilArt *Art
	if img := nilArt.Frame("player_idle", core.NewRect(0, 0, 32, 32)); img != nil {
		t.Error("Frame() on nil Art returned an image")
	}
}

func TestArtRemembersMissingSheets(t *testing.T) {
	a := NewArt(t.TempDir())
	src := core.NewRect(0, 0, 16, 16)
	if img := a.Frame("missing", src); img != nil {
		t.Error("Frame() for missing sheet returned an image")
	}
	if _, seen := a.sheets["missing"]; !seen {
		t.Error("missing sheet was not cached")
	}
	if img := a.Frame("missing", core.NewRect(0, 0, 0, 16)); img != nil {
		t.Error("Frame() with empty source returned an image")
	}
}
