package svgtext

// Option configures a Converter.
//
// Example:
//
//	c := svgtext.NewConverter(
//	    svgtext.WithFontFiles("fonts/**.ttf"),
//	    svgtext.WithCopyable(true),
//	)
type Option func(*config)

// config holds optional configuration for a Converter.
type config struct {
	fontFiles     []string
	copyable      bool
	defaultFamily string
	defaultSize   float32
	language      string
	indent        string
}

// defaultConfig returns the default converter configuration.
func defaultConfig() config {
	return config{
		defaultSize: 24,
		language:    "en-US",
		indent:      "  ",
	}
}

// WithFontFiles adds font file paths or glob patterns loaded after the
// document's own fontFiles.
func WithFontFiles(patterns ...string) Option {
	return func(c *config) {
		c.fontFiles = append(c.fontFiles, patterns...)
	}
}

// WithCopyable makes every frame copyable, adding transparent selectable
// text under the glyphs.
func WithCopyable(copyable bool) Option {
	return func(c *config) {
		c.copyable = copyable
	}
}

// WithDefaultFamily sets the family used for text without fontFamily.
// The embedded Go fonts remain the final fallback.
func WithDefaultFamily(family string) Option {
	return func(c *config) {
		c.defaultFamily = family
	}
}

// WithDefaultSize sets the em size used for text without fontSize.
func WithDefaultSize(size float32) Option {
	return func(c *config) {
		if size > 0 {
			c.defaultSize = size
		}
	}
}

// WithLanguage sets the language used for text without lang.
func WithLanguage(lang string) Option {
	return func(c *config) {
		c.language = lang
	}
}

// WithIndent sets the indentation of the SVG output. An empty string
// writes the document on a single line.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.indent = indent
	}
}
