package style

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFeatureSettings(t *testing.T) {
	tests := []struct {
		in   string
		want FeatureSettings
	}{
		{`"liga" 0`, FeatureSettings{"liga": 0}},
		{`"liga" 0, "kern"`, FeatureSettings{"liga": 0, "kern": 1}},
		{`'ss01' on, "smcp" off`, FeatureSettings{"ss01": 1, "smcp": 0}},
		{`"salt" 3,`, FeatureSettings{"salt": 3}},
		{``, FeatureSettings{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFeatureSettings(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFeatureSettingsErrors(t *testing.T) {
	for _, in := range []string{
		`liga 0`,
		`"ligatures" 1`,
		`"liga" maybe`,
		`"liga" -1`,
		`"liga" 1.5`,
		`"liga" 1 "kern" 0`,
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseFeatureSettings(in)
			assert.Error(t, err)
		})
	}
}

func TestParseVariationSettings(t *testing.T) {
	got, err := ParseVariationSettings(`"wght" 650, "wdth" default, "slnt" -12.5`)
	require.NoError(t, err)
	assert.Equal(t, VariationSettings{
		"wght": Set(650),
		"wdth": DefaultVariation(),
		"slnt": Set(-12.5),
	}, got)

	_, err = ParseVariationSettings(`"wght"`)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFeatureSettingsJSON(t *testing.T) {
	var fromObject FeatureSettings
	require.NoError(t, json.Unmarshal([]byte(`{"liga": 0, "kern": 1}`), &fromObject))
	assert.Equal(t, FeatureSettings{"liga": 0, "kern": 1}, fromObject)

	var fromString FeatureSettings
	require.NoError(t, json.Unmarshal([]byte(`"\"liga\" 0, \"kern\""`), &fromString))
	assert.Equal(t, fromObject, fromString)

	var bad FeatureSettings
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"toolong": 1}`), &bad), ErrInvalidTag)
}

func TestVariationSettingsJSON(t *testing.T) {
	var vs VariationSettings
	require.NoError(t, json.Unmarshal([]byte(`{"wght": 700, "opsz": "default"}`), &vs))
	assert.Equal(t, VariationSettings{"wght": Set(700), "opsz": DefaultVariation()}, vs)

	out, err := json.Marshal(vs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"wght": 700, "opsz": "default"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"wght": "bold"}`), &vs))
}

func TestSettingsYAML(t *testing.T) {
	var s Style
	src := `
fontFeatureSettings: '"liga" off, "dlig"'
fontVariationSettings:
  wght: 550
  wdth: default
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	assert.Equal(t, FeatureSettings{"liga": 0, "dlig": 1}, s.FontFeatureSettings)
	assert.Equal(t, VariationSettings{"wght": Set(550), "wdth": DefaultVariation()}, s.FontVariationSettings)
}

func TestVariationString(t *testing.T) {
	assert.Equal(t, "default", DefaultVariation().String())
	assert.Equal(t, "650", Set(650).String())
}
