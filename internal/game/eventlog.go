package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
	logLineChars  = 48 // DebugPrint glyphs are 6px wide
)

// EventEntry is a single line in the event log.
type EventEntry struct {
	Tick    int
	Label   string // e.g. "P3", "C2", "--"
	Message string
}

// EventLog is a ring buffer of creature events rendered on-screen.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(tick int, label, msg string) {
	el.entries[el.head] = EventEntry{
		Tick:    tick,
		Label:   label,
		Message: msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Len returns the number of retained entries.
func (el *EventLog) Len() int { return el.count }

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the event log panel on the right side of the screen.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENT LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := el.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, entryColor(e), false)
		ebitenutil.DebugPrintAt(screen, clipLine(fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message)), panelX+12, y)
		y += logLineHeight
	}
}

// entryColor picks the indicator colour from the subject prefix.
func entryColor(e EventEntry) color.RGBA {
	if e.Label == "" {
		return color.RGBA{R: 120, G: 120, B: 120, A: 255}
	}
	switch e.Label[0] {
	case 'P':
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	case 'S':
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	case 'C':
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	default:
		return color.RGBA{R: 70, G: 190, B: 90, A: 255}
	}
}

func clipLine(s string) string {
	if len(s) <= logLineChars {
		return s
	}
	return s[:logLineChars-1] + "~"
}
