package arabic

import "strings"

var foldings = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ة", "ه",
	"ى", "ي",
)

// Normalize canonicalises Arabic text for comparison and search. It strips
// diacritic marks, folds hamza-bearing alef variants to bare alef, taa
// marbuta to haa and alef maksura to yaa, and collapses whitespace runs.
// The result is only ever used for matching; stored values keep the
// original spelling.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		// Tashkeel marks occupy U+064B through U+0652.
		if r >= 0x064B && r <= 0x0652 {
			continue
		}
		b.WriteRune(r)
	}

	folded := foldings.Replace(b.String())
	return strings.Join(strings.Fields(folded), " ")
}

// Contains reports whether haystack contains needle after both sides are
// normalised.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
