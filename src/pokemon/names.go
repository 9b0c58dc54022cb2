package pokemon

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// capitalize upper-cases the first letter and lower-cases the rest:
// "mr-mime" becomes "Mr-mime".
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// displayName turns a slug into "Word word" form.
func displayName(slug string) string {
	return strings.ReplaceAll(capitalize(slug), "-", " ")
}

// titleName turns a slug into "Word Word" form.
func titleName(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

var romanValues = map[rune]int{'i': 1, 'v': 5, 'x': 10, 'l': 50}

// generationNumber reads the suffix of a generation resource name such as
// "generation-iv". Digits are accepted too.
func generationNumber(name string) (int, bool) {
	suffix := name[strings.LastIndex(name, "-")+1:]
	if n, err := strconv.Atoi(suffix); err == nil {
		return n, n > 0
	}
	total, prev := 0, 0
	runes := []rune(strings.ToLower(suffix))
	for i := len(runes) - 1; i >= 0; i-- {
		v, ok := romanValues[runes[i]]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total, total > 0
}
