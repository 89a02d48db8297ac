// Package i18n holds the message bundle behind shellcomp's translatable errors.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle stores translations per language. Every non-default language must carry exactly
// the keys of the default language.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var defaultBundle *Bundle

func init() {
	var err error
	defaultBundle, err = NewBundleWithFS(defaultLocales, "locales")
	if err != nil {
		panic("failed to load embedded locales: " + err.Error())
	}
}

// Default returns the bundle built from the embedded locales
func Default() *Bundle {
	return defaultBundle
}

// NewEmptyBundle returns a bundle with English as default language and no translations
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}
}

// NewBundleWithFS loads every <lang>.json file found under dirPrefix. The default
// language is loaded first so that other languages can be validated against it.
func NewBundleWithFS(fs embed.FS, dirPrefix string) (*Bundle, error) {
	b := NewEmptyBundle()

	entries, err := fs.ReadDir(dirPrefix)
	if err != nil {
		return nil, err
	}

	type langFile struct {
		lang language.Tag
		path string
	}
	var deferred []langFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		file := path.Join(dirPrefix, entry.Name())
		if lang != b.defaultLang {
			deferred = append(deferred, langFile{lang: lang, path: file})
			continue
		}
		if err := b.loadFile(fs, lang, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.translations[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	for _, f := range deferred {
		if err := b.loadFile(fs, f.lang, f.path); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// T returns the translation for the given key in the default language
func (b *Bundle) T(key string, args ...interface{}) string {
	b.mu.RLock()
	lang := b.defaultLang
	b.mu.RUnlock()

	return b.TL(lang, key, args...)
}

// TL returns the translation for the given language and key
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p, ok := b.printers[lang]; ok {
		return p.Sprintf(key, args...)
	}
	if p, ok := b.printers[b.defaultLang]; ok {
		return p.Sprintf(key, args...)
	}

	return key
}

// Lookup returns the raw, unformatted message for key in lang, falling back to the
// default language and finally to the key itself.
func (b *Bundle) Lookup(lang language.Tag, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg, ok := b.translations[lang][key]; ok {
		return msg
	}
	if msg, ok := b.translations[b.defaultLang][key]; ok {
		return msg
	}

	return key
}

// AddLanguage adds a new language to the bundle or merges into an existing one
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	original := b.translations[lang]
	merged := make(map[string]string, len(original)+len(translations))
	for k, v := range original {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}
	b.translations[lang] = merged

	if lang != b.defaultLang && original == nil {
		if errs := b.validateLanguage(lang); len(errs) > 0 {
			delete(b.translations, lang)
			return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, lang, errs)
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			delete(merged, key)
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
	}

	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))
	return nil
}

// HasLanguage checks if a language is supported
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.translations[lang]
	return ok
}

// Languages returns the supported languages sorted by tag
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})

	return langs
}

// HasKey checks if a key exists in a language
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.translations[lang][key]
	return ok
}

func (b *Bundle) loadFile(fs embed.FS, lang language.Tag, file string) error {
	data, err := fs.ReadFile(file)
	if err != nil {
		return err
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return err
	}

	return b.AddLanguage(lang, translations)
}

func (b *Bundle) validateLanguage(lang language.Tag) []error {
	var errs []error

	translations := b.translations[lang]
	if len(translations) == 0 {
		return []error{fmt.Errorf("%w: %s", ErrEmptyTranslations, lang)}
	}

	defaults, ok := b.translations[b.defaultLang]
	if !ok {
		return []error{fmt.Errorf("%w: %s", ErrLanguageNotFound, b.defaultLang)}
	}

	for key := range defaults {
		if _, ok := translations[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, ok := defaults[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return errs
}
