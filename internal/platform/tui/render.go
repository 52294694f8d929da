package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skunk-squad/internal/ai"
	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/scorecode"
	"github.com/vovakirdan/skunk-squad/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// projection maps world pixels inside the camera view onto screen cells.
type projection struct {
	camX   float64
	sx, sy float64 // cells per world pixel
	top    int
}

func newProjection(s *core.Screen, camX, viewW, viewH float64) projection {
	rows := max(s.Height()-hudRows, 1)
	return projection{
		camX: camX,
		sx:   float64(s.Width()) / viewW,
		sy:   float64(rows) / viewH,
		top:  hudRows,
	}
}

// rect projects a world box, keeping at least one cell per axis so small
// entities stay visible on small terminals.
func (p projection) rect(b core.Box) core.Rect {
	x0 := int(math.Floor((b.Left() - p.camX) * p.sx))
	x1 := int(math.Ceil((b.Right() - p.camX) * p.sx))
	y0 := int(math.Floor(b.Top()*p.sy)) + p.top
	y1 := int(math.Ceil(b.Bottom()*p.sy)) + p.top
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// enemyColors distinguishes enemy kinds.
var enemyColors = map[string]core.Color{
	"basic": core.ColorRed,
	"heavy": core.ColorMagenta,
	"swift": core.ColorOrange,
}

// DrawSnapshot renders a simulation snapshot into s. viewW and viewH are
// the logical viewport in world pixels. code is the score code to show on
// the game over screen, if any.
func DrawSnapshot(s *core.Screen, snap sim.Snapshot, viewW, viewH float64, code string) {
	s.Clear()
	if s.Width() < 20 || s.Height() < 6 {
		s.DrawText(0, 0, "Terminal too small")
		return
	}

	proj := newProjection(s, snap.CameraX, viewW, viewH)

	for _, pl := range snap.Platforms {
		c, fill := core.ColorGreen, '█'
		if pl.Moving {
			c, fill = core.ColorCyan, '▆'
		}
		s.DrawRect(proj.rect(pl.Box), fill, c)
	}

	for _, e := range snap.Enemies {
		c, ok := enemyColors[e.Kind]
		if !ok {
			c = core.ColorRed
		}
		glyph := 'E'
		switch e.State {
		case ai.StateDead:
			c, glyph = core.ColorGray, 'x'
		case ai.StateHurt:
			c = core.ColorBrightWhite
		case ai.StateAttack:
			glyph = '!'
		}
		s.DrawRect(proj.rect(e.Box), glyph, c)
	}

	p := snap.Player
	pc := core.ColorBrightGreen
	switch {
	case p.Dying:
		pc = core.ColorGray
	case p.Invulnerable && snap.Tick/6%2 == 0:
		pc = core.ColorWhite
	}
	s.DrawRect(proj.rect(p.Box), '@', pc)
	if p.Attacking {
		glyph := '-'
		if p.Combo == 3 {
			glyph = '='
		}
		s.DrawRect(proj.rect(p.Hitbox), glyph, core.ColorBrightYellow)
	}

	drawHUD(s, snap)

	switch snap.State {
	case sim.StateMenu:
		drawBanner(s, core.ColorBrightYellow,
			"SKUNK SQUAD",
			"Playing as "+snap.Character,
			"ENTER start  ARROWS move  SPACE jump  X attack  Q quit")
	case sim.StatePaused:
		drawBanner(s, core.ColorCyan, "PAUSED", "P resume")
	case sim.StateGameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score %d  Kills %d", snap.Score, snap.Kills)}
		if code != "" {
			lines = append(lines, "Code "+scorecode.Format(code))
		}
		lines = append(lines, "R menu  Q quit")
		drawBanner(s, core.ColorBrightRed, lines...)
	}
}

func drawHUD(s *core.Screen, snap sim.Snapshot) {
	p := snap.Player
	hp := 0
	if p.MaxHealth > 0 {
		hp = int(math.Round(10 * float64(max(p.Health, 0)) / float64(p.MaxHealth)))
	}
	bar := strings.Repeat("♥", hp) + strings.Repeat("·", 10-hp)
	left := fmt.Sprintf(" %s  %d/%d ", bar, max(p.Health, 0), p.MaxHealth)
	s.DrawTextColored(0, 0, left, core.ColorBrightRed)

	mid := fmt.Sprintf(" %s (%d/%d) ", snap.LevelName, snap.LevelIndex+1, snap.LevelCount)
	s.DrawTextCentered(0, mid, core.ColorCyan)

	right := fmt.Sprintf(" SCORE %06d  KO %d ", snap.Score, snap.Kills)
	s.DrawTextColored(s.Width()-len(right), 0, right, core.ColorBrightYellow)
}

func drawBanner(s *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2
	box := core.NewRect((s.Width()-width)/2, (s.Height()-height)/2, width, height)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, c)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = c
		}
		s.DrawTextCentered(box.Y+1+i, l, color)
	}
}
