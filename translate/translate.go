// Package translate formats user visible LS8 messages in the host locale.
package translate

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LANG_ENV names the environment variable that overrides the host locale.
// It holds a colon separated list, like LANGUAGE.
const LANG_ENV = "LS8_LANG"

var printer *message.Printer

func init() {
	printer = message.NewPrinter(Locale())
}

// Locale returns the language messages are formatted in: the first
// usable entry of LS8_LANG, else of the host locales, else en-US.
func Locale() language.Tag {
	if env := os.Getenv(LANG_ENV); env != "" {
		return match(strings.Split(env, ":"))
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ls8: locale: %v", err)
	}

	return match(locales)
}

// match parses BCP 47 or POSIX (en_US.UTF-8@euro) locale names.
func match(locales []string) language.Tag {
	for _, name := range locales {
		name, _, _ = strings.Cut(name, "@")
		name, _, _ = strings.Cut(name, ".")
		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil || tag == language.Und {
			continue
		}
		return tag
	}

	return language.AmericanEnglish
}

// From formats an en-US Sprintf() key in the selected locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
