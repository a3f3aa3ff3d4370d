package softbody

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during construction or stepping.
type SimLogEntry struct {
	Tick     int
	Subject  string  // label e.g. "P3", "S12", "C4", or "--" for creature-wide events
	Category string  // topology, relax, chamber, step, state
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] C3   state     degenerate       zero area
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. It is unbounded and machine-readable.
// A nil *SimLog discards everything.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick energy entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, subject, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, subject, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(tick, subject, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	if sl == nil {
		return nil
	}
	return sl.entries
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int {
	if sl == nil {
		return 0
	}
	return len(sl.entries)
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSubject returns entries for a specific subject label.
func (sl *SimLog) FilterSubject(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if e.Subject == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the creature's state.
func (sl *SimLog) Summary(c *Creature) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (t=%.2fs) ---\n", c.Tick(), c.Time())
	fmt.Fprintf(&sb, "Points=%d  springs=%d  chambers=%d  external=%d\n",
		len(c.points), len(c.springs), len(c.chambers), len(c.external))

	relax := "converged"
	if !c.relaxation.Converged {
		relax = "capped"
	}
	fmt.Fprintf(&sb, "Relaxation: %s after %d sweeps\n", relax, c.relaxation.Iterations)

	lo, mean, hi := c.AreaRatios()
	fmt.Fprintf(&sb, "Area ratio: min=%.3f mean=%.3f max=%.3f\n", lo, mean, hi)
	fmt.Fprintf(&sb, "Kinetic energy: %.2f\n", c.KineticEnergy())

	if n := sl.CountCategory("state", ""); n > 0 {
		fmt.Fprintf(&sb, "State errors: %d\n", n)
	} else {
		sb.WriteString("State errors: none\n")
	}
	return sb.String()
}

func pointLabel(i int) string   { return fmt.Sprintf("P%d", i) }
func springLabel(i int) string  { return fmt.Sprintf("S%d", i) }
func chamberLabel(i int) string { return fmt.Sprintf("C%d", i) }
