// Package i18n localizes the strings shown to end users alongside a presented failure.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ErrorTitle titles a failure that has no title of its own.
const ErrorTitle = "Error"

// A Translator localizes key for the language the request prefers.
type Translator interface {
	Translate(r *http.Request, key string) string
}

// A Catalog is a Translator matching the Accept-Language header
// against the languages it holds messages for.
//
// Keys without a message in the matched language fall back to English,
// then to the key itself.
type Catalog struct {
	b       *catalog.Builder
	langs   []language.Tag
	matcher language.Matcher
}

var defaults = map[language.Tag]string{
	language.English: "Error",
	language.German:  "Fehler",
	language.French:  "Erreur",
	language.Spanish: "Error",
}

// NewCatalog constructs a *Catalog holding ErrorTitle in English, German, French and Spanish.
func NewCatalog() *Catalog {
	c := &Catalog{b: catalog.NewBuilder(catalog.Fallback(language.English))}
	c.langs = []language.Tag{language.English}
	for tag, msg := range defaults {
		c.set(tag, ErrorTitle, msg)
	}

	c.matcher = language.NewMatcher(c.langs)
	return c
}

// Set adds msg as the translation of key in the language tag.
func (c *Catalog) Set(tag language.Tag, key, msg string) error {
	if err := c.set(tag, key, msg); err != nil {
		return err
	}

	c.matcher = language.NewMatcher(c.langs)
	return nil
}

// Translate localizes key for the language r prefers.
// A nil r uses English.
func (c *Catalog) Translate(r *http.Request, key string) string {
	tag := language.English
	if r != nil {
		tags, _, _ := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
		_, idx, conf := c.matcher.Match(tags...)
		if conf != language.No {
			tag = c.langs[idx]
		}
	}

	return message.NewPrinter(tag, message.Catalog(c.b)).Sprintf(key)
}

func (c *Catalog) set(tag language.Tag, key, msg string) error {
	if err := c.b.SetString(tag, key, msg); err != nil {
		return err
	}

	for _, known := range c.langs {
		if known == tag {
			return nil
		}
	}

	c.langs = append(c.langs, tag)
	return nil
}
