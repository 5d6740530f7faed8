package command

import (
	"strings"
	"unicode"
)

// Argument prefixes. A prefix token is the prefix, a slash, then the start of the value: "d/Lunch".
const (
	prefixDescription = "d"
	prefixCategory    = "c"
	prefixTag         = "t"
	prefixDate        = "date"
	prefixAmount      = "a"
	prefixFormat      = "f"
	prefixMonth       = "m"
	prefixYear        = "y"
	prefixFrom        = "from"
	prefixTo          = "to"
	prefixBank        = "b"
)

var knownPrefixes = map[string]bool{
	prefixDescription: true,
	prefixCategory:    true,
	prefixTag:         true,
	prefixDate:        true,
	prefixAmount:      true,
	prefixFormat:      true,
	prefixMonth:       true,
	prefixYear:        true,
	prefixFrom:        true,
	prefixTo:          true,
	prefixBank:        true,
}

// args is the tokenized argument tail of a command line.
//
// Tokens before the first prefix form the positional value. Every token after a prefix extends that
// prefix's value until the next prefix, so values can span several words. A repeated prefix
// replaces the earlier value, except t/ which starts a new tag each time.
type args struct {
	raw        string
	positional string
	named      map[string]string
	tags       []string
	tagged     bool
}

func parseArgs(tail string) args {
	a := args{raw: strings.TrimSpace(tail), named: make(map[string]string)}
	current := ""

	for _, tok := range strings.Fields(tail) {
		if key, value, ok := splitPrefix(tok); ok {
			current = key

			if key == prefixTag {
				a.tagged = true
				a.tags = append(a.tags, value)
			} else {
				a.named[key] = value
			}

			continue
		}

		switch current {
		case "":
			a.positional = appendWord(a.positional, tok)
		case prefixTag:
			last := len(a.tags) - 1
			a.tags[last] = appendWord(a.tags[last], tok)
		default:
			a.named[current] = appendWord(a.named[current], tok)
		}
	}

	tags := a.tags[:0]
	for _, t := range a.tags {
		if t != "" {
			tags = append(tags, t)
		}
	}

	a.tags = tags

	return a
}

// get returns the value of a prefix and whether the prefix appeared at all.
func (a args) get(prefix string) (string, bool) {
	v, ok := a.named[prefix]
	return v, ok
}

// splitPrefix recognizes "<letters>/<value>" where the letters name a known prefix.
// Anything else, such as "and/or" or a path, is plain text.
func splitPrefix(tok string) (string, string, bool) {
	name, value, found := strings.Cut(tok, "/")
	if !found || name == "" {
		return "", "", false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) {
			return "", "", false
		}
	}

	name = strings.ToLower(name)
	if !knownPrefixes[name] {
		return "", "", false
	}

	return name, value, true
}

func appendWord(s, word string) string {
	if s == "" {
		return word
	}

	return s + " " + word
}
