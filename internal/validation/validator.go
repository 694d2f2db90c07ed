package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

// slugPattern matches lowercase url-safe branch slugs like "kahve-duragi".
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// New returns a configured validator with the custom tags registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// "slug" guards the public /qr/{slug} namespace: printed stickers live
	// forever, so a branch slug must be a stable url-safe token.
	_ = v.RegisterValidation("slug", func(fl validatorv10.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return v
}
