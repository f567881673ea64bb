package text

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is the family under which the embedded Go fonts are
// registered. It is always available and is the last resort for every
// query.
const DefaultFamily = "Go"

var goFonts = []struct {
	id   string
	data []byte
}{
	{"go:regular", goregular.TTF},
	{"go:bold", gobold.TTF},
	{"go:italic", goitalic.TTF},
	{"go:bolditalic", gobolditalic.TTF},
}

// Fonts is the set of faces available to an Engine. It wraps a
// fontscan.FontMap holding the embedded Go fonts plus any font files
// loaded by the caller. System fonts are never scanned.
//
// Fonts is not safe for concurrent use.
type Fonts struct {
	fm    *fontscan.FontMap
	files int
}

// NewFonts returns a font set holding only the embedded Go fonts.
func NewFonts() (*Fonts, error) {
	logger := slog.NewLogLogger(Logger().Handler(), slog.LevelWarn)
	f := &Fonts{fm: fontscan.NewFontMap(logger)}
	for _, g := range goFonts {
		if err := f.fm.AddFont(bytes.NewReader(g.data), g.id, DefaultFamily); err != nil {
			return nil, &FontFileError{Path: g.id, Err: err}
		}
	}
	return f, nil
}

// LoadFiles expands every pattern with Glob and adds each matched file.
// A pattern that matches nothing is logged and skipped; a file that
// cannot be read or parsed is an error.
func (f *Fonts) LoadFiles(patterns []string) error {
	for _, pattern := range patterns {
		paths, err := Glob(pattern)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			Logger().Warn("font pattern matched no files", "pattern", pattern)
			continue
		}
		for _, p := range paths {
			if err := f.LoadFile(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadFile adds every face of the font or collection file at path. The
// family names recorded in the file are used.
func (f *Fonts) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &FontFileError{Path: path, Err: err}
	}
	return f.Add(path, data, "")
}

// Add adds every face found in data. id identifies the source in log
// messages and errors. If family is not empty it overrides the family
// names recorded in the font.
func (f *Fonts) Add(id string, data []byte, family string) error {
	if len(data) == 0 {
		return &FontFileError{Path: id, Err: ErrEmptyFontData}
	}
	if err := f.fm.AddFont(bytes.NewReader(data), id, family); err != nil {
		return &FontFileError{Path: id, Err: err}
	}
	f.files++
	Logger().Info("font loaded", "source", id, "family", family)
	return nil
}

// Files returns the number of font sources added besides the embedded
// Go fonts.
func (f *Fonts) Files() int {
	return f.files
}

// query sets the family list and aspect used by subsequent ResolveFace
// calls. DefaultFamily is always appended as the final fallback.
func (f *Fonts) query(families []string, aspect font.Aspect) {
	q := fontscan.Query{Families: make([]string, 0, len(families)+1), Aspect: aspect}
	for _, fam := range families {
		if fam != "" && fam != DefaultFamily {
			q.Families = append(q.Families, fam)
		}
	}
	q.Families = append(q.Families, DefaultFamily)
	f.fm.SetQuery(q)
}

// ResolveFace implements shaping.Fontmap.
func (f *Fonts) ResolveFace(r rune) *font.Face {
	return f.fm.ResolveFace(r)
}

// SetScript implements shaping.FontmapScript.
func (f *Fonts) SetScript(s language.Script) {
	f.fm.SetScript(s)
}

// Describe returns the family and aspect recorded for the face.
func (f *Fonts) Describe(face *font.Face) string {
	family, aspect := f.fm.FontMetadata(face.Font)
	return fmt.Sprintf("%s (weight %v, style %d, stretch %v)", family, aspect.Weight, aspect.Style, aspect.Stretch)
}
