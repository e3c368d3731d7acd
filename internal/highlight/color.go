package highlight

// Color is the fill and handle color of one highlight.
type Color struct {
	Highlight string
	Caret     string
}

// Palette cycles through overlapping highlights.
var Palette = [6]Color{
	{Highlight: "#2EF5FF", Caret: "#00ABB4"},
	{Highlight: "#2EFF82", Caret: "#03A745"},
	{Highlight: "#E2FF2E", Caret: "#BCD810"},
	{Highlight: "#FFAF65", Caret: "#E87810"},
	{Highlight: "#FF6A6A", Caret: "#DB2424"},
	{Highlight: "#C387FF", Caret: "#882FE1"},
}

// Grouper assigns colors to highlights fed to it in start order. Highlights
// that intersect the running group take the next palette entry; a highlight
// clear of the group starts a new group at the first entry.
type Grouper struct {
	started    bool
	start, end int
	next       int
}

// Next returns the color for the range [start, end].
func (g *Grouper) Next(start, end int) Color {
	if g.started && g.end >= start && g.start <= end {
		g.start = min(g.start, start)
		g.end = max(g.end, end)
	} else {
		g.started = true
		g.start, g.end = start, end
		g.next = 0
	}
	c := Palette[g.next]
	g.next = (g.next + 1) % len(Palette)
	return c
}

// Group returns the bounds of the running group.
func (g *Grouper) Group() (start, end int, ok bool) {
	return g.start, g.end, g.started
}

// Assignment pairs a highlight with its color.
type Assignment struct {
	Highlight Highlight
	Color     Color
}

// AssignColors sorts hs by start word id and colors them.
func AssignColors(hs []Highlight) []Assignment {
	var g Grouper
	sorted := Sorted(hs)
	out := make([]Assignment, 0, len(sorted))
	for _, h := range sorted {
		out = append(out, Assignment{Highlight: h, Color: g.Next(h.StartWordOffset, h.EndWordOffset)})
	}
	return out
}
