package domain

import (
	"fmt"
	"strings"
)

// Language selects the prompt wording and the sanitizer limits.
type Language string

const (
	// LanguageChinese is the primary, ideographic mode.
	LanguageChinese Language = "zh"
	// LanguageEnglish is the secondary mode.
	LanguageEnglish Language = "en"
)

// Name length limits and fallbacks per language.
const (
	MaxNameLengthChinese = 10
	MaxNameLengthEnglish = 25

	DefaultNameChinese = "终端"
	DefaultNameEnglish = "Terminal"
)

// ParseLanguage accepts "zh" or "en" (case-insensitive). Empty input yields
// the primary language.
func ParseLanguage(raw string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(LanguageChinese):
		return LanguageChinese, nil
	case string(LanguageEnglish):
		return LanguageEnglish, nil
	default:
		return "", fmt.Errorf("unsupported language %q (want zh|en)", raw)
	}
}

// IsIdeographic reports whether names are measured in CJK characters.
func (l Language) IsIdeographic() bool {
	return l != LanguageEnglish
}

// MaxNameLength is the sanitizer cap in characters.
func (l Language) MaxNameLength() int {
	if l.IsIdeographic() {
		return MaxNameLengthChinese
	}
	return MaxNameLengthEnglish
}

// DefaultName is returned when nothing usable survives sanitizing.
func (l Language) DefaultName() string {
	if l.IsIdeographic() {
		return DefaultNameChinese
	}
	return DefaultNameEnglish
}
