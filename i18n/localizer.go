// Package i18n renders user-facing strings from YAML message catalogs.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var bundled embed.FS

// Localizer looks up message templates by key. Templates use Go template
// syntax, for example "{{.limit}}{{.units}}".
type Localizer struct {
	locale    string
	tag       language.Tag
	mu        sync.RWMutex
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
}

// New loads the bundled catalogs and localizes for locale, falling back to
// English
func New(locale string) (*Localizer, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	paths, err := fs.Glob(bundled, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list bundled catalogs: %w", err)
	}
	for _, path := range paths {
		if _, err := bundle.LoadMessageFileFS(bundled, path); err != nil {
			return nil, fmt.Errorf("failed to load bundled catalog %s: %w", path, err)
		}
	}

	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}

	return &Localizer{
		locale:    locale,
		tag:       tag,
		bundle:    bundle,
		localizer: goi18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}, nil
}

// MustNew is New for the bundled English catalog, which always exists
func MustNew() *Localizer {
	l, err := New("en")
	if err != nil {
		panic(err)
	}
	return l
}

// LoadFile overlays the flat key/template catalog at path on top of the
// messages of the requested locale
func (l *Localizer) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read message catalog: %w", err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse message catalog: %w", err)
	}

	messages := make([]*goi18n.Message, 0, len(overrides))
	for id, other := range overrides {
		messages = append(messages, &goi18n.Message{ID: id, Other: other})
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.bundle.AddMessages(l.tag, messages...); err != nil {
		return fmt.Errorf("failed to add messages from %s: %w", path, err)
	}
	// The overlay may add the first catalog for this locale
	l.localizer = goi18n.NewLocalizer(l.bundle, l.tag.String(), language.English.String())
	return nil
}

// Locale returns the requested locale
func (l *Localizer) Locale() string {
	return l.locale
}

// T renders key with params as template data. Unknown keys render as the key
// itself.
func (l *Localizer) T(key string, params map[string]string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	text, err := l.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: params,
	})
	if err != nil && text == "" {
		return key
	}
	return text
}

// Has reports whether key exists in the catalog
func (l *Localizer) Has(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, err := l.localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	return err == nil
}
