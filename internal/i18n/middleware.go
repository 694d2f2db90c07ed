package i18n

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware redirects locale-less page paths to the default locale, so
// /qr/starbucks/x7Ka2bP9 lands on /tr/qr/starbucks/x7Ka2bP9. API and health
// endpoints are not locale-scoped and pass through.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}
		for _, locale := range Locales {
			if HasLocalePrefix(path, locale) {
				c.Next()
				return
			}
		}
		target := Resolve(path, DefaultLocale)
		if q := c.Request.URL.RawQuery; q != "" {
			target += "?" + q
		}
		c.Redirect(http.StatusTemporaryRedirect, target)
		c.Abort()
	}
}

// FromParam returns the :locale route parameter, falling back to the default
// when the segment is not a supported code.
func FromParam(c *gin.Context) string {
	locale := c.Param("locale")
	if !Supported(locale) {
		return DefaultLocale
	}
	return locale
}
