package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	type testCase struct {
		name       string
		tail       string
		positional string
		named      map[string]string
		tags       []string
		tagged     bool
	}

	tests := []testCase{
		{
			name:  "Empty",
			tail:  "   ",
			named: map[string]string{},
		},
		{
			name:       "PositionalAndMultiWordDescription",
			tail:       " 12.50 d/Lunch with   friends c/food",
			positional: "12.50",
			named:      map[string]string{"d": "Lunch with friends", "c": "food"},
		},
		{
			name:       "RepeatedTagsAccumulate",
			tail:       "5 d/Bus t/work t/road trip t/",
			positional: "5",
			named:      map[string]string{"d": "Bus"},
			tags:       []string{"work", "road trip"},
			tagged:     true,
		},
		{
			name:       "LastOccurrenceWins",
			tail:       "5 d/first d/second",
			positional: "5",
			named:      map[string]string{"d": "second"},
		},
		{
			name:       "UnknownPrefixIsText",
			tail:       "5 d/Salt and/or pepper w/ lemon",
			positional: "5",
			named:      map[string]string{"d": "Salt and/or pepper w/ lemon"},
		},
		{
			name:       "PrefixIgnoresCase",
			tail:       "5 D/Rent DATE/2025-01-01",
			positional: "5",
			named:      map[string]string{"d": "Rent", "date": "2025-01-01"},
		},
		{
			name:       "ValueStartsAfterSpace",
			tail:       "5 d/ Coffee",
			positional: "5",
			named:      map[string]string{"d": "Coffee"},
		},
		{
			name:       "PathsStayPositional",
			tail:       "statements/jan.csv b/cgd",
			positional: "statements/jan.csv",
			named:      map[string]string{"b": "cgd"},
		},
		{
			name:   "BareTagOnly",
			tail:   "t/",
			named:  map[string]string{},
			tagged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseArgs(tt.tail)

			assert.Equal(t, tt.positional, got.positional)
			assert.Equal(t, tt.named, got.named)
			assert.Equal(t, len(tt.tags), len(got.tags))

			if len(tt.tags) > 0 {
				assert.Equal(t, tt.tags, got.tags)
			}

			assert.Equal(t, tt.tagged, got.tagged)
		})
	}
}

func TestSplitPrefix(t *testing.T) {
	type testCase struct {
		tok   string
		key   string
		value string
		ok    bool
	}

	tests := []testCase{
		{tok: "d/Lunch", key: "d", value: "Lunch", ok: true},
		{tok: "from/2025-01-01", key: "from", value: "2025-01-01", ok: true},
		{tok: "t/", key: "t", value: "", ok: true},
		{tok: "x/y", ok: false},
		{tok: "/abs", ok: false},
		{tok: "d2/x", ok: false},
		{tok: "plain", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			key, value, ok := splitPrefix(tt.tok)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}
