// Package i18n handles locale-prefixed routing for the menu pages.
// Locales follow the original deployment: Turkish first, English second.
package i18n

import "strings"

// Locales are the supported two-letter codes, DefaultLocale first.
var Locales = []string{"tr", "en"}

const DefaultLocale = "tr"

// Resolve rewrites a root-relative path so it carries the active locale
// prefix exactly once. External URLs, fragments and relative paths pass
// through unchanged, as does a path that already starts with the locale at a
// segment boundary. Resolve is idempotent: Resolve(Resolve(p, l), l) == Resolve(p, l).
//
// Unsupported locale codes are not rejected here; the routing layer owns
// locale validity.
func Resolve(path, locale string) string {
	if !strings.HasPrefix(path, "/") {
		return path
	}
	if HasLocalePrefix(path, locale) {
		return path
	}
	return "/" + locale + path
}

// HasLocalePrefix reports whether path starts with /{locale} as a true path
// segment, i.e. followed by "/", end-of-string, or a query/fragment delimiter.
// A plain string-prefix check would wrongly match "/end-of-year" for "en".
func HasLocalePrefix(path, locale string) bool {
	rest, ok := strings.CutPrefix(path, "/"+locale)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	switch rest[0] {
	case '/', '?', '#':
		return true
	}
	return false
}

// Supported reports whether code is a configured locale.
func Supported(code string) bool {
	for _, l := range Locales {
		if l == code {
			return true
		}
	}
	return false
}

// Pick selects the value for locale from a localized text map, falling back
// to the default locale and then to any present value. Category and product
// names are stored per-locale.
func Pick(localized map[string]string, locale string) string {
	if v, ok := localized[locale]; ok && v != "" {
		return v
	}
	if v, ok := localized[DefaultLocale]; ok && v != "" {
		return v
	}
	for _, v := range localized {
		return v
	}
	return ""
}
