// Package normalize implements the pure text transforms applied to raw movie
// metadata before it enters the catalog.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
)

// Decade buckets a release date like "1985-07-03" into its decade ("1980s").
// The year is whatever precedes the first '-'; anything that does not parse as
// an integer yields "".
func Decade(releaseDate string) string {
	year, _, _ := strings.Cut(releaseDate, "-")
	y, err := strconv.Atoi(year)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%ds", (y/10)*10)
}

// Currency renders an amount as a dollar string with thousands separators,
// e.g. 654264015 -> "$654,264,015". Values that cannot be coerced to an
// integer render as "$0".
func Currency(v any) string {
	n, err := cast.ToInt64E(v)
	if err != nil {
		return "$0"
	}
	return "$" + humanize.Comma(n)
}

// RedactNames removes every literal name in names from text, matching
// case-insensitively, and trims whitespace left at the edges. Empty text or a
// name set with no usable entries returns text unchanged.
func RedactNames(text string, names []string) string {
	if text == "" {
		return text
	}
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			quoted = append(quoted, regexp.QuoteMeta(n))
		}
	}
	if len(quoted) == 0 {
		return text
	}
	re := regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
	return strings.TrimSpace(re.ReplaceAllString(text, ""))
}

// Initials abbreviates a title to the leading letter of each space- or
// hyphen-delimited word, keeping each letter's original case:
// "Pirates of the Caribbean: Dead Man's Chest" -> "PotC:DMC".
// Subtitle segments around ':' are abbreviated independently and rejoined.
// Words that do not start with a letter are skipped; an empty title yields "".
func Initials(title string) string {
	if title == "" {
		return ""
	}
	if strings.Contains(title, ":") {
		segments := strings.Split(title, ":")
		out := make([]string, len(segments))
		for i, seg := range segments {
			out[i] = Initials(strings.TrimSpace(seg))
		}
		return strings.Join(out, ":")
	}

	var b strings.Builder
	words := strings.FieldsFunc(title, func(r rune) bool { return r == ' ' || r == '-' })
	for _, w := range words {
		first, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(first) {
			b.WriteRune(first)
		}
	}
	return b.String()
}
