package i18n

import (
	"embed"
	"io/fs"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var bundle *goi18n.Bundle

func init() {
	bundle = goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	err := fs.WalkDir(localeFS, "locales", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		_, err = bundle.LoadMessageFileFS(localeFS, path)
		return err
	})
	if err != nil {
		panic(err)
	}
}

// T resolves a message key for the given language tags, falling back to
// English when the key or language is missing.
func T(key string, langs ...string) string {
	localizer := goi18n.NewLocalizer(bundle, langs...)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		fallback := goi18n.NewLocalizer(bundle, language.English.String())
		msg, err = fallback.Localize(&goi18n.LocalizeConfig{MessageID: key})
		if err != nil {
			return key
		}
	}
	return msg
}
