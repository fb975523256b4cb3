package tui

// This file holds the plotting primitives for the dashboard's history
// strips: a fixed-capacity ring buffer for percent samples, a one-row
// block sparkline, and a multi-row braille chart. The chart panel feeds
// them CPU, memory and progress series sampled on every tick.

// sparklineChars maps levels 0..7 to the Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// clampPercent limits a sample to the plottable range [0, 100].
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RingBuffer is a fixed-capacity circular buffer of float64 samples.
// Pushing past capacity overwrites the oldest sample, so the buffer
// always holds the most recent window.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a ring buffer with the given capacity. A
// capacity below 1 is raised to 1 so Push never has to check.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer{data: make([]float64, capacity)}
}

// Push adds a sample, overwriting the oldest one when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Len returns the number of valid samples.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the most recent sample, or 0 if the buffer is empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	idx := r.head - 1
	if idx < 0 {
		idx = len(r.data) - 1
	}
	return r.data[idx]
}

// Slice returns the samples in chronological order, oldest first.
// It returns nil for an empty buffer.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := r.head - r.count
	if start < 0 {
		start += len(r.data)
	}
	for i := range out {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Resize changes the capacity, keeping the most recent samples that fit.
// The terminal can be resized mid-run, so the history strips shrink and
// grow with the chart panel.
func (r *RingBuffer) Resize(newCap int) {
	if newCap <= 0 {
		newCap = 1
	}
	if newCap == len(r.data) {
		return
	}
	kept := r.Slice()
	if len(kept) > newCap {
		kept = kept[len(kept)-newCap:]
	}
	r.data = make([]float64, newCap)
	r.head = 0
	r.count = 0
	for _, v := range kept {
		r.Push(v)
	}
}

// Reset clears all samples.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

// RenderSparkline renders percent samples (0..100) as a single row of
// block characters, one rune per sample.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		level := int(clampPercent(v) / 100.0 * 7.0)
		if level > 7 {
			level = 7
		}
		runes[i] = sparklineChars[level]
	}
	return string(runes)
}

// brailleDots maps a dot position (column 0-1, row 0-3) inside one
// braille cell to its bit in the Unicode encoding: the character is
// U+2800 plus the OR of the lit dot bits. The left column carries dots
// 1,2,3,7 (bits 0,1,2,6) and the right column dots 4,5,6,8 (bits
// 3,4,5,7).
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots percent samples (0..100) as a braille dot
// chart of the given character dimensions. Each cell is 2 dot columns
// wide and 4 dot rows tall, so a width×rows chart resolves 2·width
// samples horizontally and 4·rows levels vertically. Samples are
// right-aligned: the most recent one lands in the rightmost dot column.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}

	dotRows := rows * 4
	dotCols := width * 2

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	// Keep only the samples that fit, then shift them to the right edge.
	plotted := values
	if len(plotted) > dotCols {
		plotted = plotted[len(plotted)-dotCols:]
	}
	offset := dotCols - len(plotted)

	for i, v := range plotted {
		dotCol := offset + i

		// Row 0 is the top of the grid, so high values map to low rows.
		dotRow := dotRows - 1 - int(clampPercent(v)/100.0*float64(dotRows-1))
		if dotRow < 0 {
			dotRow = 0
		}
		if dotRow >= dotRows {
			dotRow = dotRows - 1
		}

		charCol := dotCol / 2
		charRow := dotRow / 4
		if charCol >= 0 && charCol < width && charRow >= 0 && charRow < rows {
			grid[charRow][charCol] |= brailleDots[dotCol%2][dotRow%4]
		}
	}

	out := make([]string, rows)
	for r := range grid {
		out[r] = string(grid[r])
	}
	return out
}
