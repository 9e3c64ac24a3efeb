package techpack

import (
	"regexp"
	"strings"
)

var (
	reSeparators  = regexp.MustCompile(`[-\s]+`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// ResolveName turns a raw label fragment into an unambiguous namespaced
// identifier: lowercased, stop words and the section name stripped as whole
// words, separators collapsed to underscores, prefixed with the section.
// The result is never empty and never a bare "front"/"back" style token.
func ResolveName(rules *Rules, section, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return section + "_dimension"
	}

	text := strings.ToLower(strings.TrimSpace(raw))
	for _, word := range append(append([]string{}, rules.StopWords...), section) {
		text = stripWholeWord(text, word)
	}
	text = reSeparators.ReplaceAllString(text, "_")
	text = strings.Trim(text, "_")
	text = reUnderscores.ReplaceAllString(text, "_")

	if text == "" || rules.IsNoiseValue(text) {
		return section + "_spec"
	}
	if strings.HasPrefix(text, section+"_") {
		return text
	}
	return section + "_" + text
}

func stripWholeWord(text, word string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.ReplaceAllString(text, "")
}
