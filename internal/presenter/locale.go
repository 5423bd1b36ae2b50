package presenter

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale holds resolved formatting conventions for dates and numbers.
type Locale struct {
	tag     language.Tag
	printer *message.Printer
}

// DetectLocale resolves the user's locale from environment variables.
// Falls back to en-US if nothing is set or parseable.
func DetectLocale() Locale {
	raw := os.Getenv("LC_ALL")
	if raw == "" {
		raw = os.Getenv("LC_TIME")
	}
	if raw == "" {
		raw = os.Getenv("LANG")
	}
	return NewLocale(raw)
}

// NewLocale creates a Locale from a POSIX locale string ("de_DE.UTF-8")
// or a BCP 47 tag ("de-DE"). Empty or unparseable input yields en-US.
func NewLocale(raw string) Locale {
	// "en_US.UTF-8" → "en-US"
	if idx := strings.IndexByte(raw, '.'); idx != -1 {
		raw = raw[:idx]
	}
	raw = strings.ReplaceAll(raw, "_", "-")

	tag, _ := language.Parse(raw)
	if tag == language.Und {
		tag = language.AmericanEnglish
	}
	return Locale{tag: tag, printer: message.NewPrinter(tag)}
}

// FormatDate formats a time as the locale's preferred date string.
func (l Locale) FormatDate(t time.Time) string {
	return t.Format(l.dateLayout())
}

// FormatCount formats an integer with locale-appropriate grouping.
// Lead scores and result counts go through here.
func (l Locale) FormatCount(n int64) string {
	return l.printer.Sprint(number.Decimal(n))
}

// Tag returns the resolved language tag.
func (l Locale) Tag() language.Tag {
	return l.tag
}

// Date layouts in Go reference-time notation.
const (
	layoutMDY = "Jan 2, 2006" // US
	layoutDMY = "2 Jan 2006"  // UK and most of Europe
	layoutYMD = "2006-01-02"  // ISO regions
)

// dateLayouts maps ISO 3166-1 region codes to layouts. Regions not
// listed fall back by language, then to the US layout.
var dateLayouts = map[string]string{
	"US": layoutMDY,
	"GB": layoutDMY,
	"AU": layoutDMY,
	"IE": layoutDMY,
	"IN": layoutDMY,
	"FR": layoutDMY,
	"ES": layoutDMY,
	"IT": layoutDMY,
	"NL": layoutDMY,
	"BR": layoutDMY,
	"MX": layoutDMY,
	"DE": layoutDMY,
	"PL": layoutDMY,
	"SE": layoutDMY,
	"JP": layoutYMD,
	"CN": layoutYMD,
	"KR": layoutYMD,
	"CA": layoutYMD,
}

var dateLayoutsByLang = map[string]string{
	"en": layoutMDY,
	"de": layoutDMY,
	"fr": layoutDMY,
	"es": layoutDMY,
	"it": layoutDMY,
	"pt": layoutDMY,
	"nl": layoutDMY,
	"sv": layoutDMY,
	"pl": layoutDMY,
	"ja": layoutYMD,
	"zh": layoutYMD,
	"ko": layoutYMD,
}

func (l Locale) dateLayout() string {
	region, _ := l.tag.Region()
	if layout, ok := dateLayouts[region.String()]; ok {
		return layout
	}
	base, _ := l.tag.Base()
	if layout, ok := dateLayoutsByLang[base.String()]; ok {
		return layout
	}
	return layoutMDY
}
