// flingpad turns the whole window into a trackpad: drag anywhere to carry
// the puck, let go while still moving to fling it, press escape mid-drag to
// snap it back where you grabbed it. Click an empty spot to summon the puck
// there, and notice a fling never counts as a click. After a few idle
// seconds an embedded gesture script takes over and plays the demo itself.
// Tunables live in flingpad.toml, written with defaults on first run.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/grasp"
)

const (
	windowTitle = "grasp — Flingpad Demo"
	screenW     = 800
	screenH     = 600
	puckSize    = 56

	// Puck motion
	restSpeed = 0.05 // px per frame below which the puck stops
	maxSpeed  = 40.0 // px per frame cap on fling speed

	// Tween durations in seconds
	snapTime   = 0.3
	summonTime = 0.45

	dt = 1.0 / 60
)

// attractScript is replayed one action per frame whenever the window sits
// idle. It exercises a fling, a summoning click, an escape cancellation,
// and a touch drag.
const attractScript = `{"steps": [
	{"action": "wait", "frames": 30},
	{"action": "drag", "fromX": 200, "fromY": 300, "toX": 620, "toY": 250, "steps": 12},
	{"action": "wait", "frames": 110},
	{"action": "click", "x": 400, "y": 300},
	{"action": "wait", "frames": 60},
	{"action": "press", "x": 520, "y": 180},
	{"action": "move", "x": 470, "y": 230},
	{"action": "move", "x": 400, "y": 300},
	{"action": "move", "x": 320, "y": 380},
	{"action": "key", "key": "Escape"},
	{"action": "wait", "frames": 70},
	{"action": "touchdrag", "fromX": 620, "fromY": 420, "toX": 180, "toY": 460, "steps": 14},
	{"action": "wait", "frames": 120}
]}`

func main() {
	initializeConfigIfNot()
	conf := readConfig()

	script, err := grasp.LoadScript([]byte(attractScript))
	if err != nil {
		log.Fatal(err)
	}

	g := &game{
		conf:   conf,
		input:  grasp.NewEbitenInput(),
		syn:    grasp.NewSyntheticInput(),
		script: script,
		puck:   grasp.Vec2{X: (screenW - puckSize) / 2, Y: (screenH - puckSize) / 2},
	}
	g.recLive = g.bindPad(g.input)
	g.recDemo = g.bindPad(g.syn)

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle(windowTitle)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// pad is the slice of an input backend the demo needs: somewhere to place a
// hit region, and a Stage for the recognizer to follow gestures on.
type pad interface {
	grasp.Stage
	Region(bounds grasp.Rect, kind grasp.TargetKind) *grasp.Region
}

type game struct {
	conf   *config
	input  *grasp.EbitenInput
	syn    *grasp.SyntheticInput
	script *grasp.Script

	recLive *grasp.Recognizer // driven by the real window input
	recDemo *grasp.Recognizer // driven by the attract script

	puck     grasp.Vec2 // top-left corner
	vel      grasp.Vec2 // per-frame velocity while coasting
	grabHome grasp.Vec2 // puck position when the open gesture began
	vt       grasp.VelocityTracker

	// Snap and summon animation, active while non-nil.
	tweenX *gween.Tween
	tweenY *gween.Tween

	attract    bool
	idleFrames int
	lastCursor grasp.Vec2
	touchIDs   []ebiten.TouchID
}

// bindPad wires one input backend to the puck. The real window input and the
// synthetic input the attract script replays into get identical wiring, so
// scripted gestures and live ones are indistinguishable to the puck.
func (g *game) bindPad(p pad) *grasp.Recognizer {
	region := p.Region(grasp.Rect{Width: screenW, Height: screenH}, grasp.TargetGeneric)
	rec, err := grasp.NewRecognizer(p, grasp.Options{
		Axis:      parseAxis(g.conf.Axis),
		Threshold: g.conf.Threshold,
	}, region)
	if err != nil {
		log.Fatal(err)
	}

	rec.OnDragStart(func(ev grasp.GestureEvent) {
		g.vt.Reset()
		g.vt.Sample(ev.Current)
		g.grabHome = g.puck
		g.vel = grasp.Vec2{}
		g.tweenX, g.tweenY = nil, nil
	})
	rec.OnDrag(func(ev grasp.GestureEvent) {
		g.vt.Sample(ev.Current)
		g.puck = clampPuck(g.grabHome.Add(ev.Delta()))
	})
	rec.OnDragEnd(func(ev grasp.GestureEvent) {
		if ev.Cancelled {
			g.snapTo(g.grabHome, snapTime)
			return
		}
		v := g.vt.Velocity().Scale(g.conf.FlingScale * dt)
		if speed := v.Len(); speed > maxSpeed {
			v = v.Scale(maxSpeed / speed)
		}
		g.vel = v
	})

	// A plain click summons the puck; a fling's own click never fires.
	region.OnClick(func(ev *grasp.PointerEvent) {
		target := ev.Position.Sub(grasp.Vec2{X: puckSize / 2, Y: puckSize / 2})
		g.snapTo(clampPuck(target), summonTime)
	})

	return rec
}

func (g *game) Update() error {
	if g.pollActivity() {
		if g.attract {
			// A real touch ends the demo. The blur cancels whatever gesture
			// the script had open, so the puck snaps back cleanly.
			g.syn.Blur()
			g.script.Reset()
			g.attract = false
		}
		g.idleFrames = 0
	} else {
		g.idleFrames++
		if !g.attract && g.idleFrames >= g.conf.AttractSecs*60 {
			g.attract = true
		}
	}
	if g.attract {
		g.script.Step(g.syn)
		if g.script.Done() {
			g.script.Reset()
		}
	}

	g.input.Update()
	g.integrate()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 20, B: 26, A: 255})
	vector.DrawFilledRect(screen,
		float32(g.puck.X), float32(g.puck.Y), puckSize, puckSize, g.puckColor(), false)

	mode := "live"
	if g.attract {
		mode = "attract"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"drag anywhere to carry the puck, release while moving to fling it\n"+
			"escape mid-drag snaps it back | click to summon | tune flingpad.toml\n"+
			"mode: %s  speed: %4.0f px/s", mode, g.vel.Len()*60))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// pollActivity reports whether the user touched any real input this frame.
func (g *game) pollActivity() bool {
	mx, my := ebiten.CursorPosition()
	cursor := grasp.Vec2{X: float64(mx), Y: float64(my)}
	moved := cursor != g.lastCursor
	g.lastCursor = cursor

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	return moved ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) ||
		ebiten.IsKeyPressed(ebiten.KeyEscape) ||
		len(g.touchIDs) > 0
}

// integrate advances the puck one frame: an active tween wins, otherwise the
// fling velocity decays against friction and bounces off the walls.
func (g *game) integrate() {
	if g.tweenX != nil {
		x, doneX := g.tweenX.Update(dt)
		y, doneY := g.tweenY.Update(dt)
		g.puck = grasp.Vec2{X: float64(x), Y: float64(y)}
		if doneX && doneY {
			g.tweenX, g.tweenY = nil, nil
		}
		return
	}
	if g.vel == (grasp.Vec2{}) {
		return
	}
	g.puck = g.puck.Add(g.vel)
	if g.puck.X < 0 {
		g.puck.X = 0
		g.vel.X = -g.vel.X * g.conf.Restitution
	} else if g.puck.X > screenW-puckSize {
		g.puck.X = screenW - puckSize
		g.vel.X = -g.vel.X * g.conf.Restitution
	}
	if g.puck.Y < 0 {
		g.puck.Y = 0
		g.vel.Y = -g.vel.Y * g.conf.Restitution
	} else if g.puck.Y > screenH-puckSize {
		g.puck.Y = screenH - puckSize
		g.vel.Y = -g.vel.Y * g.conf.Restitution
	}
	g.vel = g.vel.Scale(g.conf.Friction)
	if g.vel.Len() < restSpeed {
		g.vel = grasp.Vec2{}
	}
}

func (g *game) snapTo(to grasp.Vec2, seconds float32) {
	g.vel = grasp.Vec2{}
	g.tweenX = gween.New(float32(g.puck.X), float32(to.X), seconds, ease.OutQuad)
	g.tweenY = gween.New(float32(g.puck.Y), float32(to.Y), seconds, ease.OutQuad)
}

func (g *game) puckColor() color.RGBA {
	if g.recLive.Dragging() || g.recDemo.Dragging() {
		return color.RGBA{R: 255, G: 196, B: 64, A: 255}
	}
	return color.RGBA{R: 64, G: 170, B: 255, A: 255}
}

func parseAxis(s string) grasp.Axis {
	switch s {
	case "horizontal":
		return grasp.AxisHorizontal
	case "vertical":
		return grasp.AxisVertical
	default:
		return grasp.AxisBoth
	}
}

func clampPuck(p grasp.Vec2) grasp.Vec2 {
	if p.X < 0 {
		p.X = 0
	}
	if p.X > screenW-puckSize {
		p.X = screenW - puckSize
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > screenH-puckSize {
		p.Y = screenH - puckSize
	}
	return p
}
