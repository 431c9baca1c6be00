package malformed

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
	"github.com/vovakirdan/malformed/internal/systems"
)

// Visual characters for rendering
const (
	RoofChar     = '▄'
	WallChar     = '█'
	WindowChar   = '▪'
	CabinetChar  = '▒'
	DoorClosed   = '▌'
	DoorOpen     = '░'
	ByteChar     = '◆'
	ByteAltChar  = '◇'
	GaugeFull    = '█'
	GaugeEmpty   = '░'
	gaugeWidth   = 12
	hudRow       = 0
	playerColumn = 4 // the player stands at width/playerColumn
)

// projection maps world coordinates to screen cells. World y grows up
// and screen rows grow down. Row 0 belongs to the HUD and the remaining
// rows span from the top of the world band down to the death line.
type projection struct {
	originCol int
	colWidth  float64
	topY      float64
	rowHeight float64
}

func newProjection(dst *core.Screen, cfg config.RunnerConfig) projection {
	rows := max(dst.Height()-2, 1)
	// Leave headroom for a full jump off the highest roof.
	top := cfg.Terrain.MaxY + cfg.World.BuildingHeight/2 + cfg.Player.JumpHeight + cfg.Player.ColliderHeight
	return projection{
		originCol: dst.Width() / playerColumn,
		colWidth:  cfg.World.ColumnWidth,
		topY:      top,
		rowHeight: (top - cfg.World.DeathY) / float64(rows),
	}
}

func (p projection) col(x float64) int {
	return p.originCol + int(math.Floor(x/p.colWidth))
}

func (p projection) row(y float64) int {
	return 1 + int(math.Floor((p.topY-y)/p.rowHeight))
}

// rect converts a world box to the screen cells it covers.
func (p projection) rect(b core.AABB) core.Rect {
	x0, x1 := p.col(b.Left()), p.col(b.Right())
	y0, y1 := p.row(b.Top()), p.row(b.Bottom())
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	w := g.sim.World()
	proj := newProjection(dst, g.cfg)

	for _, id := range w.Query(ecs.TagPlatform) {
		g.drawBuilding(dst, proj, id)
	}
	if cabinet, ok := w.Single(ecs.TagCabinet); ok {
		g.drawCabinet(dst, proj, cabinet)
	}
	if board, ok := w.Single(ecs.TagBoard); ok {
		pos := w.WorldPosition(board.ID)
		dst.DrawTextColored(proj.col(pos.X), proj.row(pos.Y), "[PARTS ->]", core.ColorOrange)
	}
	for _, id := range w.Query(ecs.TagByte) {
		pos := w.WorldPosition(id)
		r := ByteChar
		if (g.frame/15)%2 == 1 {
			r = ByteAltChar
		}
		dst.SetColored(proj.col(pos.X), proj.row(pos.Y), r, core.ColorBrightCyan)
	}
	if p, ok := g.sim.Player(); ok {
		g.drawPlayer(dst, proj, p)
	}

	g.drawHUD(dst)

	ctx := g.sim.Context()
	if text := g.dialog.current(); text != "" && ctx.Life == systems.Alive && ctx.Movement == systems.Walking {
		dst.DrawTextColored(max((dst.Width()-len([]rune(text)))/2, 0), dst.Height()-1, text, core.ColorBrightWhite)
	}

	switch {
	case ctx.Life == systems.Dead:
		g.drawDeath(dst, ctx)
	case ctx.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	}
}

func (g *Game) drawBuilding(dst *core.Screen, proj projection, id ecs.EntityID) {
	w := g.sim.World()
	e, _ := w.Get(id)
	b, ok := w.Bounds(id)
	if !ok || e.Platform == nil {
		return
	}

	color := buildingColor(e.Platform.HeightClass)
	r := proj.rect(b)
	bottom := min(r.Bottom(), dst.Height())
	for y := r.Y; y < bottom; y++ {
		for x := r.X; x < r.Right(); x++ {
			ch := WallChar
			switch {
			case y == r.Y:
				ch = RoofChar
			case (x-r.X)%3 == 1 && (y-r.Y)%2 == 0:
				ch = WindowChar
			}
			dst.SetColored(x, y, ch, color)
		}
	}
}

// buildingColor shades a building by how high its roof sits.
func buildingColor(class components.HeightClass) core.Color {
	switch class {
	case components.HeightMid:
		return core.ColorMagenta
	case components.HeightHigh:
		return core.ColorCyan
	}
	return core.ColorBlue
}

func (g *Game) drawCabinet(dst *core.Screen, proj projection, cabinet *ecs.Entity) {
	w := g.sim.World()
	if b, ok := w.Bounds(cabinet.ID); ok {
		dst.DrawRect(proj.rect(b), CabinetChar, core.ColorGray)
	}
	door, ok := w.ChildWith(cabinet.ID, ecs.TagDoor)
	if !ok {
		return
	}
	b, _ := w.Bounds(door.ID)
	r := proj.rect(b)
	ch, color := DoorClosed, core.ColorGray
	if cabinet.Sprite != nil && cabinet.Sprite.Frame == systems.CabinetOpen {
		ch, color = DoorOpen, core.ColorYellow
	}
	for y := r.Y; y < r.Bottom(); y++ {
		dst.SetColored(r.X, y, ch, color)
	}
}

// drawPlayer renders a two-cell-wide runner whose legs follow the pose.
func (g *Game) drawPlayer(dst *core.Screen, proj projection, p *ecs.Entity) {
	b, ok := g.sim.World().Bounds(p.ID)
	if !ok {
		return
	}
	r := proj.rect(b)
	x, top, feet := r.X, r.Y, r.Bottom()-1
	if feet <= top {
		feet = top + 1
	}

	legs := "╱╲"
	pose := components.PoseIdle
	if p.Pose != nil {
		pose = *p.Pose
	}
	switch pose {
	case components.PoseIdle:
		legs = "││"
	case components.PoseWalking, components.PoseRunning:
		rate := 12
		if pose == components.PoseRunning {
			rate = 6
		}
		if (g.frame/rate)%2 == 1 {
			legs = "╲╱"
		}
	case components.PoseRising:
		legs = "┘└"
	case components.PoseFalling:
		legs = "╲╱"
	}

	dst.DrawTextColored(x, top, "▐▌", core.ColorBrightWhite)
	for y := top + 1; y < feet; y++ {
		dst.DrawTextColored(x, y, "██", core.ColorWhite)
	}
	dst.DrawTextColored(x, feet, legs, core.ColorWhite)
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	res := g.sim.Resource()
	speed := 0.0
	if p, ok := g.sim.Player(); ok {
		speed = p.Locomotion.VelocityX
	}

	left := fmt.Sprintf(" SCORE %d  BYTES %d  SPD %.0f ", st.Score, st.Bytes, speed)
	dst.DrawTextColored(0, hudRow, left, core.ColorBrightWhite)

	label := "STAMINA"
	if res.Kind == config.ResourceMemory {
		label = "MEMORY"
	}
	filled := core.Clamp(int(math.Round(res.Ratio()*gaugeWidth)), 0, gaugeWidth)
	bar := strings.Repeat(string(GaugeFull), filled) + strings.Repeat(string(GaugeEmpty), gaugeWidth-filled)

	gauge := fmt.Sprintf("%s %s ", label, bar)
	dst.DrawTextColored(max(dst.Width()-len([]rune(gauge)), 0), hudRow, gauge, core.GaugeColor(res.Ratio()))
}

func (g *Game) drawDeath(dst *core.Screen, ctx systems.Context) {
	reason := "you fell off the grid"
	if ctx.Cause == systems.CauseMemory {
		reason = "memory corrupted"
	}
	prompt := "rebooting..."
	if ctx.DeadFor >= g.cfg.Restart.Cooldown {
		prompt = fmt.Sprintf("Score: %d  |  Press R to reboot", g.State().Score)
	}
	drawCenteredMessage(dst, "SYSTEM FAILURE: "+reason, prompt, core.ColorRed)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, color core.Color) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-tw)/2, boxY+1, title, color)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
