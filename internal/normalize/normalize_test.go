package normalize_test

import (
	"strings"
	"testing"

	"github.com/cineguess/cinedex/internal/normalize"
)

func TestDecade(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{
			name: "Full release date",
			date: "1985-07-03",
			want: "1980s",
		},
		{
			name: "Year only",
			date: "1999",
			want: "1990s",
		},
		{
			name: "Decade boundary",
			date: "2000-01-01",
			want: "2000s",
		},
		{
			name: "End of decade",
			date: "2019-12-31",
			want: "2010s",
		},
		{
			name: "Empty string",
			date: "",
			want: "",
		},
		{
			name: "Not a date",
			date: "not-a-date",
			want: "",
		},
		{
			name: "Leading dash",
			date: "-1985-07-03",
			want: "",
		},
		{
			name: "Whitespace year",
			date: " 1985-07-03",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Decade(tt.date)
			if got != tt.want {
				t.Errorf("Decade(%q) = %q; want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "Large amount",
			in:   654264015,
			want: "$654,264,015",
		},
		{
			name: "Int64 amount",
			in:   int64(1000),
			want: "$1,000",
		},
		{
			name: "Zero",
			in:   0,
			want: "$0",
		},
		{
			name: "Below grouping threshold",
			in:   999,
			want: "$999",
		},
		{
			name: "Numeric string",
			in:   "2500000",
			want: "$2,500,000",
		},
		{
			name: "Non-numeric string",
			in:   "bad",
			want: "$0",
		},
		{
			name: "Float truncates",
			in:   12.9,
			want: "$12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Currency(tt.in)
			if got != tt.want {
				t.Errorf("Currency(%v) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRedactNames(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		names []string
		want  string
	}{
		{
			name:  "Single name",
			text:  "A film by Jane.",
			names: []string{"Jane"},
			want:  "A film by .",
		},
		{
			name:  "Case insensitive",
			text:  "JANE stars alongside jane.",
			names: []string{"Jane"},
			want:  "stars alongside .",
		},
		{
			name:  "Multiple names",
			text:  "Neo meets Trinity and Morpheus.",
			names: []string{"Trinity", "Morpheus", "Neo"},
			want:  "meets  and .",
		},
		{
			name:  "Name with regex metacharacters",
			text:  "Starring D.W. Read here.",
			names: []string{"D.W. Read"},
			want:  "Starring  here.",
		},
		{
			name:  "Empty text",
			text:  "",
			names: []string{"Jane"},
			want:  "",
		},
		{
			name:  "No names",
			text:  "Unchanged text.",
			names: nil,
			want:  "Unchanged text.",
		},
		{
			name:  "Only empty names",
			text:  "Unchanged text.",
			names: []string{"", ""},
			want:  "Unchanged text.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.RedactNames(tt.text, tt.names)
			if got != tt.want {
				t.Errorf("RedactNames(%q, %v) = %q; want %q", tt.text, tt.names, got, tt.want)
			}
		})
	}
}

// Redacted text must not contain the name in any casing and must have
// no surrounding whitespace.
func TestRedactNamesProperties(t *testing.T) {
	got := normalize.RedactNames("  A film by Jane, starring JANE herself ", []string{"Jane"})
	if strings.Contains(strings.ToLower(got), "jane") {
		t.Errorf("RedactNames left a redacted name behind: %q", got)
	}
	if got != strings.TrimSpace(got) {
		t.Errorf("RedactNames left surrounding whitespace: %q", got)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "Subtitle segments",
			title: "Pirates of the Caribbean: Dead Man's Chest",
			want:  "PotC:DMC",
		},
		{
			name:  "Plain title",
			title: "The Matrix",
			want:  "TM",
		},
		{
			name:  "Hyphenated word",
			title: "Spider-Man",
			want:  "SM",
		},
		{
			name:  "Leading digit word skipped",
			title: "2 Fast 2 Furious",
			want:  "FF",
		},
		{
			name:  "Apostrophe mid-word",
			title: "Ocean's Eleven",
			want:  "OE",
		},
		{
			name:  "Lowercase words keep case",
			title: "Lord of the Rings",
			want:  "LotR",
		},
		{
			name:  "Multiple spaces",
			title: "The  Good   Place",
			want:  "TGP",
		},
		{
			name:  "Empty title",
			title: "",
			want:  "",
		},
		{
			name:  "Punctuation-only word skipped",
			title: "Movie & Friends",
			want:  "MF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Initials(tt.title)
			if got != tt.want {
				t.Errorf("Initials(%q) = %q; want %q", tt.title, got, tt.want)
			}
		})
	}
}
