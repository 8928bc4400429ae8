package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  Lang
	}{
		{"en", English},
		{"it", Italian},
		{"es", Spanish},
		{"de", German},
		{"fr", French},
		{"it-IT", Italian},
		{"FR", French},
		{"pt", English},
		{"", English},
		{"not a language!", English},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestFor_EveryLanguageIsComplete(t *testing.T) {
	for _, lang := range Supported() {
		m := For(lang)
		for name, value := range map[string]string{
			"DataLoadErrorPrefix":  m.DataLoadErrorPrefix,
			"ValueLoadErrorPrefix": m.ValueLoadErrorPrefix,
			"NoValues":             m.NoValues,
			"NoResults":            m.NoResults,
			"SelectValidFile":      m.SelectValidFile,
			"Tyres":                m.Tyres,
			"Brakes":               m.Brakes,
			"LeftFront":            m.LeftFront,
			"RightRear":            m.RightRear,
		} {
			assert.NotEmpty(t, value, "%s missing %s", lang, name)
		}
	}
}

func TestFor_UnknownFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, For(English), For(Lang("pt")))
}

func TestMessages_LabelledErrors(t *testing.T) {
	assert.Equal(t, "Unable to read setups from repository: GitHub API error: 403",
		For(English).DataLoadError("GitHub API error: 403"))
	assert.Equal(t, "Impossibile ottenere i valori convertiti da GoSetups: GoSetups upload failed: 500",
		For(Italian).ValueLoadError("GoSetups upload failed: 500"))
}
