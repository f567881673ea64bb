package text

import "github.com/gogpu/svgtext/style"

// Option configures an Engine.
type Option func(*engineConfig)

// engineConfig holds configuration for Engine.
type engineConfig struct {
	family    string
	size      float32
	language  string
	cacheSize int
	effect    func(style.Style) any
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() engineConfig {
	return engineConfig{
		family:    DefaultFamily,
		size:      24,
		language:  "en-US",
		cacheSize: 4096,
	}
}

// WithDefaultFamily sets the family used for runs without fontFamily.
// The family is tried before the built-in Go fonts.
func WithDefaultFamily(family string) Option {
	return func(c *engineConfig) {
		c.family = family
	}
}

// WithDefaultSize sets the em size used for runs without fontSize.
func WithDefaultSize(size float32) Option {
	return func(c *engineConfig) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithLanguage sets the BCP 47 language for runs without lang.
func WithLanguage(lang string) Option {
	return func(c *engineConfig) {
		c.language = lang
	}
}

// WithCacheSize sets the number of glyph outlines kept in memory.
// A value of 0 disables the limit.
func WithCacheSize(n int) Option {
	return func(c *engineConfig) {
		c.cacheSize = n
	}
}

// WithEffect sets the function that computes the drawing effect attached
// to every glyph run from the run's resolved style. The svg package turns
// effects implementing image/color.Color into fills.
func WithEffect(fn func(style.Style) any) Option {
	return func(c *engineConfig) {
		c.effect = fn
	}
}
