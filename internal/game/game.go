package game

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Soft-Creatures/internal/softbody"
)

// borderWidth is the pixel gap between the window edge and the tank.
const borderWidth = 12

// hudLineHeight matches basicfont.Face7x13.
const hudLineHeight = 14

// Creature drawing sizes in pixels.
const (
	pointRadius    = 10
	centroidRadius = 6
	springWidth    = 3
)

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pointColor      = color.RGBA{R: 255, A: 255}
	springColor     = color.RGBA{A: 255}
	externalColor   = color.RGBA{G: 255, A: 255}
	selectedColor   = color.RGBA{R: 255, G: 200, A: 255}
)

// simSpeeds are the selectable ticks-per-frame multipliers.
var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// Config selects the creature a Game starts with.
type Config struct {
	Seed   int64
	Params softbody.Params
	Speed  float64
}

// DefaultConfig returns the default viewer configuration.
func DefaultConfig() Config {
	return Config{
		Seed:   1,
		Params: softbody.DefaultParams(),
		Speed:  1,
	}
}

// Game draws one creature and steps it once per tick. It only reads
// geometry from the creature; all physics lives in softbody.
type Game struct {
	width      int
	height     int
	tankWidth  int
	tankHeight int
	offX       int
	offY       int

	seed     int64
	params   softbody.Params
	creature *softbody.Creature
	sim      *softbody.Simulator
	simLog   *softbody.SimLog
	mirrored int // SimLog entries already copied to eventLog
	reporter *softbody.SimReporter

	eventLog      *EventLog
	inspector     Inspector
	chamberColors []color.RGBA
	polyBuf       []softbody.Vec2

	simSpeed  float64
	tickAccum float64
	showHUD   bool
	stepErr   error
}

// New builds the first creature from cfg.
func New(cfg Config) (*Game, error) {
	g := &Game{
		tankWidth:  softbody.ScreenWidth,
		tankHeight: softbody.ScreenHeight,
		offX:       borderWidth,
		offY:       borderWidth,
		params:     cfg.Params,
		eventLog:   NewEventLog(),
		simSpeed:   cfg.Speed,
		showHUD:    true,
	}
	g.width = borderWidth + g.tankWidth + borderWidth + logPanelWidth
	g.height = borderWidth + g.tankHeight + borderWidth
	if err := g.rebuild(cfg.Seed); err != nil {
		return nil, err
	}
	return g, nil
}

// rebuild replaces the creature with a fresh one grown from seed.
func (g *Game) rebuild(seed int64) error {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation only
	simLog := softbody.NewSimLog(false)
	c, err := softbody.NewCreature(g.params, rng, simLog)
	if err != nil {
		return fmt.Errorf("build creature (seed %d): %w", seed, err)
	}
	g.seed = seed
	g.creature = c
	g.simLog = simLog
	g.sim = softbody.NewSimulator(c)
	g.mirrored = 0
	g.reporter = softbody.NewSimReporter(0)
	g.reporter.Collect(c)
	g.inspector.selected = -1
	g.stepErr = nil
	g.tickAccum = 0

	g.chamberColors = make([]color.RGBA, c.ChamberCount())
	for i := range g.chamberColors {
		g.chamberColors[i] = color.RGBA{
			R: uint8(rng.Intn(201)),
			G: uint8(rng.Intn(201)),
			B: uint8(rng.Intn(201)),
			A: 255,
		}
	}
	g.eventLog.Add(0, "--", fmt.Sprintf("seed %d: %d points, %d chambers", seed, c.PointCount(), c.ChamberCount()))
	g.mirrorSimLog()
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleInput()

	if g.simSpeed <= 0 || g.stepErr != nil {
		return nil
	}

	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		if err := g.simTick(); err != nil {
			g.stepErr = err
			g.simSpeed = 0
			break
		}
	}
	g.mirrorSimLog()
	return nil
}

// simTick advances the creature by one step.
func (g *Game) simTick() error {
	if err := g.sim.Step(g.creature, g.params.DT); err != nil {
		return err
	}
	if g.creature.Tick()%softbody.TicksPerSecond == 0 {
		g.reporter.Collect(g.creature)
	}
	return nil
}

// mirrorSimLog copies new engine events into the on-screen panel.
func (g *Game) mirrorSimLog() {
	entries := g.simLog.Entries()
	for _, e := range entries[g.mirrored:] {
		g.eventLog.Add(e.Tick, e.Subject, e.Category+"/"+e.Key+" "+e.Value)
	}
	g.mirrored = len(entries)
}

// handleInput processes keyboard and mouse (edge-triggered).
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && g.stepErr == nil {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = slowerSpeed(g.simSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) && g.stepErr == nil {
		g.simSpeed = fasterSpeed(g.simSpeed)
	}

	// R: grow a new creature from the next seed.
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.rebuild(g.seed + 1); err != nil {
			g.eventLog.Add(g.creature.Tick(), "--", err.Error())
		}
	}

	// C: copy the current report to the clipboard.
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.Report()); err != nil {
			g.eventLog.Add(g.creature.Tick(), "--", "clipboard: "+err.Error())
		} else {
			g.eventLog.Add(g.creature.Tick(), "--", "report copied")
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
}

// Report is the text the C key copies: log summary plus the window report.
func (g *Game) Report() string {
	s := fmt.Sprintf("seed=%d\n", g.seed)
	s += g.simLog.Summary(g.creature)
	s += g.reporter.WindowSummary().Format()
	if g.stepErr != nil {
		s += "\nstopped: " + g.stepErr.Error() + "\n"
	}
	return s
}

func slowerSpeed(cur float64) float64 {
	for i := len(simSpeeds) - 1; i >= 0; i-- {
		if simSpeeds[i] < cur {
			return simSpeeds[i]
		}
	}
	return simSpeeds[0]
}

func fasterSpeed(cur float64) float64 {
	for _, s := range simSpeeds {
		if s > cur {
			return s
		}
	}
	return simSpeeds[len(simSpeeds)-1]
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	ox, oy := float32(g.offX), float32(g.offY)
	vector.FillRect(screen, ox, oy, float32(g.tankWidth), float32(g.tankHeight), backgroundColor, false)
	g.drawCreature(screen, ox, oy)
	vector.StrokeRect(screen, ox-1, oy-1, float32(g.tankWidth)+2, float32(g.tankHeight)+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	// Event log panel (screen coords).
	logX := g.offX + g.tankWidth + g.offX
	g.eventLog.Draw(screen, logX, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

// drawCreature renders points, springs, external edges and chamber centroids.
func (g *Game) drawCreature(screen *ebiten.Image, ox, oy float32) {
	c := g.creature
	for i := 0; i < c.PointCount(); i++ {
		p := c.Position(i)
		col := pointColor
		if i == g.inspector.selected {
			col = selectedColor
		}
		vector.FillCircle(screen, ox+float32(p.X), oy+float32(p.Y), pointRadius, col, true)
	}
	for i := 0; i < c.SpringCount(); i++ {
		a, b, _ := c.SpringEndpoints(i)
		vector.StrokeLine(screen, ox+float32(a.X), oy+float32(a.Y), ox+float32(b.X), oy+float32(b.Y), springWidth, springColor, true)
	}
	for _, i := range c.ExternalEdges() {
		a, b, _ := c.SpringEndpoints(i)
		vector.StrokeLine(screen, ox+float32(a.X), oy+float32(a.Y), ox+float32(b.X), oy+float32(b.Y), springWidth, externalColor, true)
	}
	for i := 0; i < c.ChamberCount(); i++ {
		// Faint outline in the chamber colour.
		g.polyBuf = c.ChamberPolygon(i, g.polyBuf[:0])
		col := g.chamberColors[i]
		faint := color.RGBA{R: col.R, G: col.G, B: col.B, A: 90}
		for j := range g.polyBuf {
			a, b := g.polyBuf[j], g.polyBuf[(j+1)%len(g.polyBuf)]
			vector.StrokeLine(screen, ox+float32(a.X), oy+float32(a.Y), ox+float32(b.X), oy+float32(b.Y), 1, faint, true)
		}
		ctr := c.ChamberCentroid(i)
		vector.FillCircle(screen, ox+float32(ctr.X), oy+float32(ctr.Y), centroidRadius, col, true)
	}
}

// drawHUD renders key hints and live stats in the bottom-left corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	speedStr := fmt.Sprintf("%gx", g.simSpeed)
	if g.simSpeed == 0 {
		speedStr = "PAUSED"
	}
	lo, mean, hi := g.creature.AreaRatios()
	lines := []string{
		fmt.Sprintf("SIM: %s  T=%d  t=%.1fs  seed=%d", speedStr, g.creature.Tick(), g.creature.Time(), g.seed),
		fmt.Sprintf("area %.2f/%.2f/%.2f  energy %.1f", lo, mean, hi, g.creature.KineticEnergy()),
		"P=pause  ,/. speed  R=new creature",
		"C=copy report  H=HUD  click=inspect  Esc=quit",
	}
	if g.stepErr != nil {
		lines = append(lines, "STOPPED: "+g.stepErr.Error())
	}

	const padX, padY = 6, 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*hudLineHeight + padY*2)
	bx := float32(g.offX + 6)
	by := float32(g.offY+g.tankHeight) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		// text.Draw positions by baseline.
		text.Draw(screen, line, basicfont.Face7x13, int(bx)+padX, int(by)+padY+(i+1)*hudLineHeight-3, color.White)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it closes.
func Run(cfg Config) error {
	g, err := New(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle("Soft Creatures")
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetTPS(softbody.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
