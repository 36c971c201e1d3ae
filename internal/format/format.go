package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var enPrinter = message.NewPrinter(language.English)

// Thousands groups digits with commas regardless of locale.
// Example: Thousands(3840) => "3,840"
func Thousands(n int) string {
	return enPrinter.Sprintf("%d", n)
}

// FmtNumber formats n with the grouping rules of lang. Unknown languages use English.
func FmtNumber(n int64, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "zh":
		return t.Format("2006年1月2日")
	default:
		return t.Format("Jan 2, 2006")
	}
}
