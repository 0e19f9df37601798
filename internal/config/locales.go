package config

import (
	"log/slog"
	"strings"
)

const (
	LangEN = "en"
	LangES = "es"
)

// NormalizeLanguage maps a configured language to a supported one, falling back to English.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch lang {
	case LangEN, LangES:
		return lang
	default:
		slog.Warn("language not supported, falling back to english", "language", lang)
		return LangEN
	}
}
