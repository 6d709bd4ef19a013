// Package catalog holds the site's locale-keyed UI text table.
//
// Catalog files live under locales/<locale>/<namespace>.yaml. The base locale
// must define every key; other locales may omit keys and fall back to it.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = i18n.English

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeCatalog struct {
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Bundle contains every locale catalog loaded from disk.
type Bundle struct {
	locales map[i18n.Locale]*localeCatalog
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files from the provided filesystem.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[i18n.Locale]*localeCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.addFile(p, file); err != nil {
			return nil, err
		}
	}

	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	if !i18n.Locale(locale).IsSupported() {
		return fmt.Errorf("catalog %s: locale %q is not supported", p, locale)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace == "" {
		return fmt.Errorf("catalog %s: namespace is required", p)
	}
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, namespace, namespaceFromPath)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	lc, ok := b.locales[i18n.Locale(locale)]
	if !ok {
		lc = &localeCatalog{namespaces: map[string]map[string]string{}, messages: map[string]string{}}
		b.locales[i18n.Locale(locale)] = lc
	}
	if _, exists := lc.namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, namespace, locale)
	}

	namespaceMessages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if !strings.HasPrefix(trimmedKey, namespace+".") {
			return fmt.Errorf("catalog %s: key %q must start with namespace %q", p, trimmedKey, namespace)
		}
		if _, exists := lc.messages[trimmedKey]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, trimmedKey, locale)
		}
		lc.messages[trimmedKey] = value
		namespaceMessages[trimmedKey] = value
	}
	lc.namespaces[namespace] = namespaceMessages
	return nil
}

// Register publishes catalog messages to x/text/message so printers created
// with NewPrinter resolve keys. Every locale is registered with the full base
// key set, overlaid with its own translations.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		messages := b.Messages(locale)
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(locale.Tag(), key, messages[key]); err != nil {
				return fmt.Errorf("register %s %q: %w", locale, key, err)
			}
		}
	}
	return nil
}

// NewPrinter returns a message printer for locale.
func NewPrinter(locale i18n.Locale) *message.Printer {
	return message.NewPrinter(locale.Tag())
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale i18n.Locale) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[locale]
	return ok
}

// Locales returns all available locales, base locale first.
func (b *Bundle) Locales() []i18n.Locale {
	if b == nil {
		return nil
	}
	out := make([]i18n.Locale, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i] == BaseLocale || out[j] == BaseLocale {
			return out[i] == BaseLocale
		}
		return out[i] < out[j]
	})
	return out
}

// LocaleMessages returns a copy of the messages defined exactly for locale.
func (b *Bundle) LocaleMessages(locale i18n.Locale) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	lc, ok := b.locales[locale]
	if !ok {
		return map[string]string{}
	}
	return copyMap(lc.messages)
}

// Messages returns the base-locale messages overlaid with locale's own.
func (b *Bundle) Messages(locale i18n.Locale) map[string]string {
	out := b.LocaleMessages(BaseLocale)
	if locale == BaseLocale {
		return out
	}
	for key, value := range b.LocaleMessages(locale) {
		out[key] = value
	}
	return out
}

// Message returns one message value with base-locale fallback.
func (b *Bundle) Message(locale i18n.Locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if lc, ok := b.locales[locale]; ok {
		if value, exists := lc.messages[key]; exists {
			return value, true
		}
	}
	if locale != BaseLocale {
		if lc, ok := b.locales[BaseLocale]; ok {
			value, exists := lc.messages[key]
			return value, exists
		}
	}
	return "", false
}

// Text returns key as localized text: the base-locale message as default and
// every other locale's message as an override.
func (b *Bundle) Text(key string) i18n.Text {
	if b == nil {
		return i18n.Text{}
	}
	key = strings.TrimSpace(key)
	text := i18n.Text{}
	if base, ok := b.locales[BaseLocale]; ok {
		text.Default = base.messages[key]
	}
	for locale, lc := range b.locales {
		if locale == BaseLocale {
			continue
		}
		value, ok := lc.messages[key]
		if !ok {
			continue
		}
		if text.Overrides == nil {
			text.Overrides = i18n.Overrides{}
		}
		text.Overrides[locale] = value
	}
	return text
}

// Namespaces returns sorted namespace names for a locale.
func (b *Bundle) Namespaces(locale i18n.Locale) []string {
	if b == nil {
		return nil
	}
	lc, ok := b.locales[locale]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(lc.namespaces))
	for namespace := range lc.namespaces {
		out = append(out, namespace)
	}
	sort.Strings(out)
	return out
}

func copyMap(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
