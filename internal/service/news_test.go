package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"youthhub/api/internal/models"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Summer Camp 2026", "summer-camp-2026"},
		{"  Youth   Leadership  Program ", "youth-leadership-program"},
		{"Çalıştay Duyurusu", "calistay-duyurusu"},
		{"News & Updates!", "news-updates"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveSlug(tc.title))
		})
	}
}

func TestApplyArabicTranslation(t *testing.T) {
	input := NewsInput{
		Title:   "English title",
		Content: "English content",
		Translations: models.Translations{
			Ar: models.Translation{
				Title:   "عنوان عربي",
				Content: "محتوى عربي",
				Summary: "ملخص",
			},
			En: models.Translation{Title: "English title", Content: "English content"},
		},
	}

	input.applyArabicTranslation()

	assert.Equal(t, "عنوان عربي", input.Title)
	assert.Equal(t, "محتوى عربي", input.Content)
	if assert.NotNil(t, input.Summary) {
		assert.Equal(t, "ملخص", *input.Summary)
	}
}

func TestApplyArabicTranslationEmptyFieldsKept(t *testing.T) {
	input := NewsInput{
		Title:   "Fallback title",
		Content: "Fallback content",
	}

	input.applyArabicTranslation()

	assert.Equal(t, "Fallback title", input.Title)
	assert.Equal(t, "Fallback content", input.Content)
	assert.Nil(t, input.Summary)
}
