package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoldsHamzaVariants(t *testing.T) {
	assert.Equal(t, Normalize("أحمد"), Normalize("إحمد"))
	assert.Equal(t, Normalize("أحمد"), Normalize("آحمد"))
	assert.Equal(t, "احمد", Normalize("أحمد"))
}

func TestNormalizeStripsDiacritics(t *testing.T) {
	assert.Equal(t, "محمد", Normalize("مُحَمَّد"))
}

func TestNormalizeFoldsTaaMarbutaAndYaa(t *testing.T) {
	assert.Equal(t, "فاطمه", Normalize("فاطمة"))
	assert.Equal(t, "مصطفي", Normalize("مصطفى"))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "محمد العتيبي", Normalize("  محمد \t العتيبي  "))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"أحمد بن عبدالله", "مُحَمَّد", "فاطمة  الزهراء", "", "plain latin"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize(normalize(%q))", in)
	}
}

func TestContainsMatchesAcrossVariants(t *testing.T) {
	assert.True(t, Contains("محمد أحمد العتيبي", "احمد"))
	assert.False(t, Contains("محمد العتيبي", "خالد"))
}
