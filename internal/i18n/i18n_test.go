package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTResolvesPerLanguage(t *testing.T) {
	en := T("forbidden.generic", "en")
	ar := T("forbidden.generic", "ar")
	tr := T("forbidden.generic", "tr")

	assert.NotEmpty(t, en)
	assert.NotEmpty(t, ar)
	assert.NotEmpty(t, tr)
	assert.NotEqual(t, en, ar)
	assert.NotEqual(t, en, tr)
}

func TestTFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, T("forbidden.generic", "en"), T("forbidden.generic", "fr"))
	assert.Equal(t, T("forbidden.generic", "en"), T("forbidden.generic"))
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "does.not.exist", T("does.not.exist", "en"))
}

func TestTAcceptLanguageHeaderValue(t *testing.T) {
	// Accept-Language values with quality factors still resolve.
	assert.Equal(t, T("forbidden.generic", "ar"), T("forbidden.generic", "ar-SA,ar;q=0.9,en;q=0.8"))
}
