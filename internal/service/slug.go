package service

import (
	gslug "github.com/gosimple/slug"
)

// DeriveSlug builds a URL-friendly slug from a title. Kept as an explicit
// pure function invoked before persistence so the derivation is visible and
// testable, not an implicit save hook.
func DeriveSlug(title string) string {
	return gslug.Make(title)
}
