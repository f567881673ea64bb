package svgtext

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"

	"github.com/gogpu/svgtext/document"
	"github.com/gogpu/svgtext/style"
	"github.com/gogpu/svgtext/text"
)

// tags counts start tags by name and collects the attributes of the last
// element seen with each name.
func tags(t *testing.T, b []byte) (map[string]int, map[string]map[string]string) {
	t.Helper()
	counts := map[string]int{}
	attrs := map[string]map[string]string{}
	var current map[string]string
	l := xml.NewLexer(parse.NewInputBytes(b))
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			return counts, attrs
		case xml.StartTagToken:
			name := string(l.Text())
			counts[name]++
			current = map[string]string{}
			attrs[name] = current
		case xml.AttributeToken:
			if current != nil {
				current[string(l.Text())] = strings.Trim(string(l.AttrVal()), `"'`)
			}
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken, xml.EndTagToken:
			current = nil
		default:
			_ = data
		}
	}
}

func decode(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Decode(strings.NewReader(src), document.FormatJSON)
	require.NoError(t, err)
	return doc
}

func TestConvertHello(t *testing.T) {
	doc := decode(t, `{"frames": [{"contents": ["Hello"]}]}`)

	var out bytes.Buffer
	stats, err := NewConverter().ConvertStats(context.Background(), doc, &out)
	require.NoError(t, err)

	b := out.Bytes()
	require.True(t, bytes.HasPrefix(b, []byte("<?xml ")), "missing XML declaration")

	counts, attrs := tags(t, b)
	assert.Equal(t, 1, counts["svg"])
	assert.Equal(t, "0 0 1024 1024", attrs["svg"]["viewBox"])
	assert.Equal(t, 5, counts["use"], "one <use> per glyph")
	assert.LessOrEqual(t, counts["path"], 5)
	assert.Equal(t, 4, counts["path"], "the two l glyphs share a path")
	assert.Equal(t, "Hello", attrs["g"]["data-source-text"])
	assert.Equal(t, "black", attrs["g"]["fill"])
	assert.Zero(t, counts["text"])

	assert.Equal(t, 1, stats.Frames)
	assert.Equal(t, 5, stats.Glyphs)
	assert.Equal(t, 4, stats.Paths)
	assert.Equal(t, int64(len(b)), stats.Bytes)
}

func TestConvertStyledFrames(t *testing.T) {
	doc := decode(t, `{
		"width": 400, "height": 300,
		"frames": [
			{
				"title": "greeting",
				"copyable": true,
				"contents": [[{"color": "#ff0000", "fontSize": 48}, "Hi"]]
			},
			{
				"left": 0, "top": 150, "right": 400, "bottom": 300,
				"writingMode": "tb-rl",
				"contents": ["Hi"]
			}
		]
	}`)

	var out bytes.Buffer
	require.NoError(t, Convert(context.Background(), doc, &out))

	counts, attrs := tags(t, out.Bytes())
	assert.Equal(t, "0 0 400 300", attrs["svg"]["viewBox"])
	assert.Equal(t, 1, counts["title"])
	assert.Equal(t, 1, counts["text"], "only the first frame is copyable")
	assert.Equal(t, "transparent", attrs["text"]["fill"])
	assert.Equal(t, 4, counts["use"])
	// Paths are in font units, so both sizes may share them.
	assert.GreaterOrEqual(t, counts["path"], 2)
	assert.LessOrEqual(t, counts["path"], 4)
	assert.Contains(t, out.String(), `fill="#ff0000"`)
	assert.Contains(t, out.String(), "rotate(90)")
}

func TestConvertCopyableOption(t *testing.T) {
	doc := decode(t, `{"frames": [{"contents": ["a"]}, {"contents": ["b"]}]}`)

	var out bytes.Buffer
	require.NoError(t, NewConverter(WithCopyable(true)).Convert(context.Background(), doc, &out))

	counts, _ := tags(t, out.Bytes())
	assert.Equal(t, 2, counts["text"])
}

func TestConvertCompact(t *testing.T) {
	doc := decode(t, `{"frames": [{"contents": ["ab"]}]}`)

	var out bytes.Buffer
	require.NoError(t, NewConverter(WithIndent("")).Convert(context.Background(), doc, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 2, "declaration and one line of SVG")
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0o600))

	tests := []struct {
		name  string
		src   string
		opts  []Option
		kind  Kind
		frame int
		is    error
	}{
		{
			name:  "invalid canvas",
			src:   `{"width": 0, "frames": []}`,
			kind:  KindDecode,
			frame: -1,
			is:    document.ErrInvalidDocument,
		},
		{
			name:  "invalid frame",
			src:   `{"frames": [{"contents": ["ok"]}, {"left": 10, "right": 5, "contents": ["x"]}]}`,
			kind:  KindDecode,
			frame: 1,
			is:    document.ErrInvalidFrame,
		},
		{
			name:  "infinite hue",
			src:   `{"frames": [{"contents": [{"color": "hsl(-inf, 1%, 1%)"}, "x"]}]}`,
			kind:  KindDecode,
			frame: 0,
			is:    style.ErrInvalidColor,
		},
		{
			name:  "unreadable font",
			src:   `{"frames": [{"contents": ["x"]}]}`,
			opts:  []Option{WithFontFiles(bad)},
			kind:  KindLayout,
			frame: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, tt.src)
			var out bytes.Buffer
			err := NewConverter(tt.opts...).Convert(context.Background(), doc, &out)
			require.Error(t, err)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.frame, e.Frame)
			assert.True(t, IsKind(err, tt.kind))
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.Zero(t, out.Len(), "no output on error")
		})
	}

	t.Run("font error type", func(t *testing.T) {
		doc := decode(t, `{"frames": []}`)
		doc.FontFiles = []string{bad}
		err := Convert(context.Background(), doc, &bytes.Buffer{})
		var fe *text.FontFileError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, bad, fe.Path)
	})
}

func TestConvertCanceled(t *testing.T) {
	doc := decode(t, `{"frames": [{"contents": ["x"]}]}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Convert(ctx, doc, &out)
	require.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestConvertWriteError(t *testing.T) {
	doc := decode(t, `{"frames": [{"contents": ["x"]}]}`)
	err := Convert(context.Background(), doc, failingWriter{})
	assert.True(t, IsKind(err, KindIO))
	assert.ErrorIs(t, err, errDiskFull)
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frames:\n  - contents: [hi]\n"), 0o600))

	doc, err := ReadDocument(path, document.FormatYAML)
	require.NoError(t, err)
	require.Len(t, doc.Frames, 1)

	_, err = ReadDocument(filepath.Join(dir, "missing.json"), document.FormatJSON)
	assert.True(t, IsKind(err, KindIO))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadDocument(path, document.FormatJSON)
	assert.True(t, IsKind(err, KindDecode))

	// A directory opens but cannot be read.
	_, err = ReadDocument(dir, document.FormatJSON)
	assert.True(t, IsKind(err, KindIO), "got %v", err)
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: KindLayout, Frame: 2, Err: errors.New("boom")}
	assert.Equal(t, "svgtext: layout error in frame 2: boom", err.Error())

	err = &Error{Kind: KindIO, Frame: -1, Err: errors.New("boom")}
	assert.Equal(t, "svgtext: io error: boom", err.Error())
	assert.Equal(t, "unknown", Kind(9).String())
}
