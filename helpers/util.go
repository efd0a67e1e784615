package helpers

import (
	"strings"
)

// entityReplacements is applied in order; &amp; sits in the middle so the entities
// before it are never re-expanded from an unescaped ampersand.
var entityReplacements = [][2]string{
	{"&lpar;", "("},
	{"&rpar;", ")"},
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&quest;", "?"},
	{"&num;", "#"},
	{"&excl;", "!"},
	{"&dollar;", "$"},
	{"&percnt;", "%"},
	{"&amp;", "&"},
	{"&colon;", ":"},
	{"&period;", "."},
	{"&comma;", ","},
	{"&commat;", "@"},
	{"&sol;", "/"},
}

// NormalizeTitle replaces the named character references deal sites leave in titles
// with their literal characters. Unknown entities pass through unchanged.
func NormalizeTitle(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	for _, r := range entityReplacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}
