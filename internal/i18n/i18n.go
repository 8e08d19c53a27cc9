package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"
)

// DefaultLocale fallback locale for unknown preferences
const DefaultLocale = LocaleEnglish

// ResolveLocale picks the response locale from the request. The lang
// query parameter wins over Accept-Language; anything unknown falls
// back to the default.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		if lang := normalizeLocale(part); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

// T translates a message key
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf translates a message key and formats arguments into it
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalizeLocale(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.IndexAny(raw, ";-_"); idx > 0 {
		raw = raw[:idx]
	}
	switch raw {
	case LocaleEnglish, LocaleArabic:
		return raw
	default:
		return ""
	}
}
