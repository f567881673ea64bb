package text

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/svgtext/style"
)

// shapingScale multiplies the em size before shaping. HarfBuzz scales
// fonts by whole units, so shaping at 64 times the requested size keeps
// fractional sizes and positions accurate to 1/64 of a layout unit.
const shapingScale = 64

// stretchClasses maps CSS font-stretch classes 1..9 to go-text stretch
// ratios.
var stretchClasses = [...]font.Stretch{
	font.StretchUltraCondensed,
	font.StretchExtraCondensed,
	font.StretchCondensed,
	font.StretchSemiCondensed,
	font.StretchNormal,
	font.StretchSemiExpanded,
	font.StretchExpanded,
	font.StretchExtraExpanded,
	font.StretchUltraExpanded,
}

// resolvedStyle is a style run with every engine default filled in and
// converted to go-text values.
type resolvedStyle struct {
	families   []string
	aspect     font.Aspect
	emSize     float32
	lang       language.Language
	features   []shaping.FontFeature
	variations []font.Variation
	varKey     string
	effect     any
}

// resolve fills in defaults from cfg and converts s for shaping.
func (c engineConfig) resolve(s style.Style) resolvedStyle {
	r := resolvedStyle{
		emSize: s.Size(c.size),
		aspect: font.Aspect{Style: font.StyleNormal, Weight: font.WeightNormal, Stretch: font.StretchNormal},
	}

	if s.FontFamily != nil {
		r.families = splitFamilies(*s.FontFamily)
	}
	if c.family != "" {
		r.families = append(r.families, c.family)
	}

	if s.FontWeight != nil {
		r.aspect.Weight = font.Weight(*s.FontWeight)
	}
	if s.FontWidth != nil && *s.FontWidth >= 1 && *s.FontWidth <= len(stretchClasses) {
		r.aspect.Stretch = stretchClasses[*s.FontWidth-1]
	}
	if s.FontStyle != nil && *s.FontStyle != style.FontStyleUpright {
		r.aspect.Style = font.StyleItalic
	}

	lang := c.language
	if s.Lang != nil {
		lang = *s.Lang
	}
	if canon, err := style.CanonicalLang(lang); err == nil {
		lang = canon
	}
	r.lang = language.NewLanguage(lang)

	for _, tag := range sortedKeys(s.FontFeatureSettings) {
		if style.CheckTag(tag) != nil {
			continue
		}
		r.features = append(r.features, shaping.FontFeature{Tag: ot.MustNewTag(tag), Value: s.FontFeatureSettings[tag]})
	}

	var key strings.Builder
	for _, tag := range sortedKeys(s.FontVariationSettings) {
		v := s.FontVariationSettings[tag]
		if v.Default || style.CheckTag(tag) != nil {
			continue
		}
		r.variations = append(r.variations, font.Variation{Tag: ot.MustNewTag(tag), Value: v.Value})
		key.WriteString(tag)
		key.WriteByte('=')
		key.WriteString(strconv.FormatFloat(float64(v.Value), 'g', -1, 32))
		key.WriteByte(';')
	}
	r.varKey = key.String()

	if c.effect != nil {
		r.effect = c.effect(s)
	}
	return r
}

// splitFamilies splits a CSS-like family list such as `"Noto Serif", Go`.
func splitFamilies(list string) []string {
	var out []string
	for _, f := range strings.Split(list, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// shaper segments and shapes style runs with go-text/typesetting.
//
// HarfbuzzShaper caches its scaled fonts by *font.Font, so faces that
// share a font but differ in variation coordinates each get their own
// shaper.
type shaper struct {
	fonts     *Fonts
	seg       shaping.Segmenter
	shapers   map[string]*shaping.HarfbuzzShaper
	instances map[instanceKey]*font.Face
}

type instanceKey struct {
	font *font.Font
	vars string
}

func newShaper(fonts *Fonts) *shaper {
	return &shaper{
		fonts:     fonts,
		shapers:   make(map[string]*shaping.HarfbuzzShaper),
		instances: make(map[instanceKey]*font.Face),
	}
}

// shape shapes para[start:end] with style r. The whole paragraph is
// passed as context. The outputs are in logical order, each covering a
// range of one bidi level, script and face.
func (s *shaper) shape(para []rune, start, end int, base di.Direction, r *resolvedStyle) ([]shaping.Output, error) {
	if start >= end {
		return nil, nil
	}
	s.fonts.query(r.families, r.aspect)

	in := shaping.Input{
		Text:         para,
		RunStart:     start,
		RunEnd:       end,
		Direction:    base,
		FontFeatures: r.features,
		Size:         shapeSize(r.emSize),
		Script:       language.LookupScript(para[start]),
		Language:     r.lang,
	}

	hb := s.shaperFor(r.varKey)
	segments := s.seg.Split(in, s.fonts)
	outs := make([]shaping.Output, 0, len(segments))
	for _, seg := range segments {
		if seg.Face == nil {
			return nil, ErrNoFace
		}
		seg.Face = s.instance(seg.Face, r)
		outs = append(outs, hb.Shape(seg))
	}
	return outs, nil
}

func (s *shaper) shaperFor(varKey string) *shaping.HarfbuzzShaper {
	hb, ok := s.shapers[varKey]
	if !ok {
		hb = &shaping.HarfbuzzShaper{}
		s.shapers[varKey] = hb
	}
	return hb
}

// instance returns face with the variation coordinates of r applied.
// Instances are created once per font and variation set.
func (s *shaper) instance(face *font.Face, r *resolvedStyle) *font.Face {
	if len(r.variations) == 0 {
		return face
	}
	key := instanceKey{font: face.Font, vars: r.varKey}
	if inst, ok := s.instances[key]; ok {
		return inst
	}
	inst := font.NewFace(face.Font)
	inst.SetVariations(r.variations)
	s.instances[key] = inst
	Logger().Debug("variation instance created", "face", s.fonts.Describe(face), "variations", r.varKey)
	return inst
}

// shapeSize converts an em size in layout units to the HarfBuzz size.
func shapeSize(emSize float32) fixed.Int26_6 {
	v := math.Round(float64(emSize) * shapingScale * 64)
	if v > math.MaxInt32 {
		v = math.MaxInt32
	}
	return fixed.Int26_6(v)
}

// fromShaped converts a shaped distance back to layout units.
func fromShaped(v fixed.Int26_6) float32 {
	return float32(v) / (64 * shapingScale)
}

// toShaped converts a distance in layout units to the shaped scale.
func toShaped(v float32) fixed.Int26_6 {
	f := math.Round(float64(v) * shapingScale * 64)
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	return fixed.Int26_6(f)
}

// baseDirection returns the paragraph direction used for shaping and bidi
// resolution. Vertical modes are shaped horizontally and rotated.
func baseDirection(m WritingMode) di.Direction {
	if m.Reading() == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}
