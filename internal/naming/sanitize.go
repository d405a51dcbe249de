package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/doeshing/termnamer/internal/domain"
)

const quoteChars = "\"'「」『』“”‘’"

var (
	markdownReplacer  = strings.NewReplacer("*", "", "`", "")
	arrowPattern      = regexp.MustCompile(`→|->`)
	enumerationPrefix = regexp.MustCompile(`^\d+[.、)\-]\s*`)
	labelPrefix       = regexp.MustCompile(`(?i)^(?:名称|name|建议|推荐|答案|output)\s*[：:]\s*`)
	parenthetical     = regexp.MustCompile(`[（(][^）)]*[）)]`)
)

// CleanName reduces raw backend output to a short session name. It never
// fails: the result is non-empty, at most lang.MaxNameLength() runes long,
// and CleanName(CleanName(s)) == CleanName(s).
//
// A single pass can expose new noise (a quote hidden behind a prefix, a second
// enumeration), so passes repeat until the name stops changing. Every pass
// either keeps its input, shortens it, or yields the default name, which is
// itself stable, so the loop terminates.
func CleanName(raw string, lang domain.Language) string {
	name := strings.ToValidUTF8(raw, "")
	for {
		next := cleanPass(name, lang)
		if next == name {
			return next
		}
		name = next
	}
}

func cleanPass(raw string, lang domain.Language) string {
	name := strings.TrimSpace(raw)

	name = strings.TrimSpace(markdownReplacer.Replace(name))
	name = afterLastArrow(name)
	if idx := strings.LastIndex(name, "="); idx >= 0 {
		name = strings.TrimSpace(name[idx+1:])
	}
	name = stripQuotes(name)

	if line, _, found := strings.Cut(name, "\n"); found {
		name = strings.TrimSpace(line)
	}
	if idx := strings.IndexAny(name, ",;，；"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}

	name = strings.TrimSpace(enumerationPrefix.ReplaceAllString(name, ""))
	name = strings.TrimSpace(labelPrefix.ReplaceAllString(name, ""))
	name = stripQuotes(name)

	if without := strings.TrimSpace(parenthetical.ReplaceAllString(name, "")); utf8.RuneCountInString(without) >= 2 {
		name = without
	}

	name = truncateRunes(name, lang.MaxNameLength())
	if name == "" {
		return lang.DefaultName()
	}
	return name
}

func afterLastArrow(name string) string {
	if !arrowPattern.MatchString(name) {
		return name
	}
	parts := lo.Compact(arrowPattern.Split(name, -1))
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-1])
}

func stripQuotes(name string) string {
	return strings.TrimSpace(strings.Trim(name, quoteChars))
}

func truncateRunes(name string, limit int) string {
	if utf8.RuneCountInString(name) <= limit {
		return name
	}
	runes := []rune(name)
	return strings.TrimSpace(string(runes[:limit]))
}
