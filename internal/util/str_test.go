package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Mission District", "mission-district"},
		{"slash", "SOMA / south beach", "soma-south-beach"},
		{"punctuation runs", "  lower pac hts.,  ", "lower-pac-hts"},
		{"parens", "castro (upper market)", "castro-upper-market"},
		{"already slug", "noe-valley", "noe-valley"},
		{"empty", "", ""},
		{"only punctuation", " - / ", ""},
		{"unicode decomposed", "Caf\u00e9", "cafe\u0301"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
