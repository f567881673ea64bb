package text

import (
	"fmt"
	"math"
	"sort"
	"unicode"
	"unicode/utf16"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/svgtext/style"
)

// Layout is the result of laying out one frame.
type Layout struct {
	// Runs holds the positioned glyph runs in line order, and in visual
	// order within each line.
	Runs []GlyphRun

	// Metrics is the extent of all line boxes relative to the layout box.
	Metrics Metrics

	// Lines is the number of lines, including empty ones.
	Lines int
}

// Engine lays out styled UTF-16 text into glyph runs.
//
// An Engine reuses its shaping and wrapping buffers between calls and is
// not safe for concurrent use.
type Engine struct {
	fonts    *Fonts
	cfg      engineConfig
	shaper   *shaper
	wrapper  shaping.LineWrapper
	outlines *Cache[OutlineKey, []OutlineEvent]
}

// NewEngine returns an engine drawing faces from fonts. A nil fonts uses
// the embedded Go fonts only.
func NewEngine(fonts *Fonts, opts ...Option) (*Engine, error) {
	if fonts == nil {
		var err error
		if fonts, err = NewFonts(); err != nil {
			return nil, err
		}
	}
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{
		fonts:    fonts,
		cfg:      cfg,
		shaper:   newShaper(fonts),
		outlines: NewCache[OutlineKey, []OutlineEvent](cfg.cacheSize),
	}, nil
}

// span is a rune range of one paragraph sharing one resolved style.
type span struct {
	start, end int
	style      *resolvedStyle
}

// lineRun is one shaped output placed on a line.
type lineRun struct {
	out     shaping.Output
	glyphs  []Glyph
	style   *resolvedStyle
	rtl     bool
	advance float32
	text    string
}

// line is a wrapped line before placement.
type line struct {
	runs  []lineRun
	width float32
	em    float32
	last  bool
}

// Layout shapes, wraps and positions text. buf is UTF-16 text and runs
// assign styles to ranges of it; zero-length runs are ignored and text
// not covered by any run gets the engine defaults.
func (e *Engine) Layout(buf []uint16, runs []style.Run, box Box) (*Layout, error) {
	if err := checkRuns(runs, len(buf)); err != nil {
		return nil, err
	}
	if box.LineHeight <= 0 {
		box.LineHeight = 1
	}

	runes, index := decodeUTF16(buf)
	spans := e.spans(runes, index, runs)

	var lines []line
	for _, p := range paragraphs(runes) {
		pl, err := e.layoutParagraph(runes[p.start:p.end], clip(spans, p.start, p.end), box)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pl...)
	}

	out := e.place(lines, box)
	Logger().Debug("layout done", "units", len(buf), "lines", out.Lines, "runs", len(out.Runs))
	return out, nil
}

func checkRuns(runs []style.Run, n int) error {
	var prevEnd uint32
	for i, r := range runs {
		if r.Start > r.End || int(r.End) > n {
			return fmt.Errorf("%w: run %d [%d, %d) over %d code units", ErrInvalidRun, i, r.Start, r.End, n)
		}
		if r.Empty() {
			continue
		}
		if r.Start < prevEnd {
			return fmt.Errorf("%w: run %d starts at %d inside the previous run", ErrInvalidRun, i, r.Start)
		}
		prevEnd = r.End
	}
	return nil
}

// decodeUTF16 decodes buf and returns, for every code unit offset
// 0..len(buf), the index of the rune that starts at or contains it.
func decodeUTF16(buf []uint16) ([]rune, []int) {
	runes := make([]rune, 0, len(buf))
	index := make([]int, len(buf)+1)
	for i := 0; i < len(buf); i++ {
		index[i] = len(runes)
		u := buf[i]
		if utf16.IsSurrogate(rune(u)) && i+1 < len(buf) {
			if r := utf16.DecodeRune(rune(u), rune(buf[i+1])); r != unicode.ReplacementChar {
				index[i+1] = len(runes)
				runes = append(runes, r)
				i++
				continue
			}
		}
		if utf16.IsSurrogate(rune(u)) {
			runes = append(runes, unicode.ReplacementChar)
			continue
		}
		runes = append(runes, rune(u))
	}
	index[len(buf)] = len(runes)
	return runes, index
}

// spans converts style runs to rune ranges covering the whole text.
func (e *Engine) spans(runes []rune, index []int, runs []style.Run) []span {
	var out []span
	pos := 0
	var def *resolvedStyle
	fill := func(end int) {
		if pos < end {
			if def == nil {
				d := e.cfg.resolve(style.Style{})
				def = &d
			}
			out = append(out, span{start: pos, end: end, style: def})
			pos = end
		}
	}
	for _, r := range runs {
		if r.Empty() {
			continue
		}
		start, end := index[r.Start], index[r.End]
		if end <= start {
			continue
		}
		fill(start)
		rs := e.cfg.resolve(r.Style)
		out = append(out, span{start: start, end: end, style: &rs})
		pos = end
	}
	fill(len(runes))
	return out
}

// paragraphs splits runes at CR, LF, CRLF and U+2029. The separators are
// not part of any paragraph. A trailing separator yields a final empty
// paragraph.
func paragraphs(runes []rune) []span {
	var out []span
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\r':
			out = append(out, span{start: start, end: i})
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n', '\u2029':
			out = append(out, span{start: start, end: i})
			start = i + 1
		}
	}
	return append(out, span{start: start, end: len(runes)})
}

// clip returns the parts of spans inside [start, end), rebased to start.
func clip(spans []span, start, end int) []span {
	var out []span
	for _, s := range spans {
		lo, hi := max(s.start, start), min(s.end, end)
		if lo < hi {
			out = append(out, span{start: lo - start, end: hi - start, style: s.style})
		}
	}
	if len(out) == 0 {
		// Empty paragraph: keep the style in effect at its position so
		// the line still gets a height.
		for _, s := range spans {
			if s.start <= start && start <= s.end {
				return []span{{style: s.style}}
			}
		}
		if len(spans) > 0 {
			return []span{{style: spans[len(spans)-1].style}}
		}
	}
	return out
}

func (e *Engine) layoutParagraph(para []rune, spans []span, box Box) ([]line, error) {
	base := baseDirection(box.Mode)

	var outs []shaping.Output
	for i := range spans {
		s := &spans[i]
		shaped, err := e.shaper.shape(para, s.start, s.end, base, s.style)
		if err != nil {
			return nil, fmt.Errorf("shaping %q: %w", string(para[s.start:s.end]), err)
		}
		outs = append(outs, shaped...)
	}

	if len(outs) == 0 {
		em := e.cfg.size
		if len(spans) > 0 {
			em = spans[0].style.emSize
		}
		return []line{{em: em, last: true}}, nil
	}

	maxWidth := fixed.Int26_6(math.MaxInt32)
	if inline := box.inline(); inline > 0 {
		maxWidth = toShaped(inline)
	}
	wrapped, _ := e.wrapper.WrapParagraphF(shaping.WrapConfig{
		Direction:   base,
		BreakPolicy: shaping.WhenNecessary,
	}, maxWidth, para, shaping.NewSliceIterator(outs))

	lines := make([]line, 0, len(wrapped))
	for i, wl := range wrapped {
		l := line{last: i == len(wrapped)-1}
		// Lines returned by the wrapper are only valid until the next
		// call, so everything is copied into lineRuns here.
		visual := make([]shaping.Output, len(wl))
		copy(visual, wl)
		sort.SliceStable(visual, func(a, b int) bool {
			return visual[a].VisualIndex < visual[b].VisualIndex
		})
		for _, out := range visual {
			lr := e.lineRun(para, out, spans)
			l.runs = append(l.runs, lr)
			l.width += lr.advance
			l.em = max(l.em, lr.style.emSize)
		}
		if box.Align == AlignJustify && !l.last && box.inline() > 0 {
			justify(&l, para, box.inline())
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// lineRun converts a shaped output to glyphs in logical order.
func (e *Engine) lineRun(para []rune, out shaping.Output, spans []span) lineRun {
	lr := lineRun{
		out: out,
		rtl: out.Direction.Progression() == di.TowardTopLeft,
	}
	lr.style = styleAt(spans, out.Runes.Offset)
	if end := out.Runes.Offset + out.Runes.Count; out.Runes.Offset >= 0 && end <= len(para) {
		lr.text = string(para[out.Runes.Offset:end])
	}

	lr.glyphs = make([]Glyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		lr.glyphs[i] = Glyph{
			ID:      g.GlyphID,
			Advance: fromShaped(g.Advance),
			XOffset: fromShaped(g.XOffset),
			YOffset: -fromShaped(g.YOffset),
			Cluster: g.TextIndex(),
		}
		lr.advance += lr.glyphs[i].Advance
	}
	if lr.rtl {
		// Right-to-left outputs list glyphs left to right.
		for i, j := 0, len(lr.glyphs)-1; i < j; i, j = i+1, j-1 {
			lr.glyphs[i], lr.glyphs[j] = lr.glyphs[j], lr.glyphs[i]
		}
	}
	return lr
}

func styleAt(spans []span, offset int) *resolvedStyle {
	for _, s := range spans {
		if s.start <= offset && offset < s.end {
			return s.style
		}
	}
	return spans[len(spans)-1].style
}

// justify widens the spaces of l so that it fills inline.
func justify(l *line, para []rune, inline float32) {
	slack := inline - l.width
	if slack <= 0 {
		return
	}
	type ref struct{ run, glyph int }
	var spaces []ref
	for ri, lr := range l.runs {
		for gi, g := range lr.glyphs {
			if g.Advance > 0 && g.Cluster >= 0 && g.Cluster < len(para) && unicode.IsSpace(para[g.Cluster]) {
				spaces = append(spaces, ref{ri, gi})
			}
		}
	}
	if len(spaces) == 0 {
		return
	}
	extra := slack / float32(len(spaces))
	for _, s := range spaces {
		l.runs[s.run].glyphs[s.glyph].Advance += extra
		l.runs[s.run].advance += extra
	}
	l.width = inline
}
