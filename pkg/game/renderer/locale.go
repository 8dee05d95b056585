package renderer

import (
	"embed"
	"fmt"
	"os"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used when no translation exists for the requested one
const DefaultLanguage = "en_GB"

const localeDomain = "default"

//go:embed locale
var bundledLocales embed.FS

// InitLocale loads translations. With a directory the gettext layout
// dir/<lang>/LC_MESSAGES/default.po is used; otherwise the bundled catalogue
// for lang (or DefaultLanguage) is loaded.
func InitLocale(dir, lang string) error {
	if lang == "" {
		lang = DefaultLanguage
	}

	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("locale directory: %w", err)
		}
		gotext.Configure(dir, lang, localeDomain)
		return nil
	}

	data, err := bundledLocales.ReadFile("locale/" + lang + "/LC_MESSAGES/" + localeDomain + ".po")
	if err != nil {
		lang = DefaultLanguage
		data, err = bundledLocales.ReadFile("locale/" + lang + "/LC_MESSAGES/" + localeDomain + ".po")
		if err != nil {
			return fmt.Errorf("bundled locale: %w", err)
		}
	}

	po := gotext.NewPo()
	po.Parse(data)

	l := gotext.NewLocale("", lang)
	l.AddTranslator(localeDomain, po)
	gotext.SetLocales([]*gotext.Locale{l})
	return nil
}
