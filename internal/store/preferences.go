package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/i474232898/sabia-weather/internal/i18n"
)

// LanguageKey is the storage key for the UI language preference.
const LanguageKey = "sabia-language"

// ErrUnsupportedLanguage is returned when saving a code outside pt|en|es.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Preferences wraps a KV backend with the language preference rules.
type Preferences struct {
	kv KV
}

func NewPreferences(kv KV) *Preferences {
	return &Preferences{kv: kv}
}

// Language returns the stored language, or i18n.Default when nothing valid
// is stored. Backend failures are returned alongside the default.
func (p *Preferences) Language(ctx context.Context) (i18n.Language, error) {
	v, err := p.kv.Get(ctx, LanguageKey)
	if errors.Is(err, ErrNotFound) {
		return i18n.Default, nil
	}
	if err != nil {
		return i18n.Default, err
	}
	lang, _ := i18n.Parse(v)
	return lang, nil
}

// SetLanguage validates and stores code.
func (p *Preferences) SetLanguage(ctx context.Context, code string) (i18n.Language, error) {
	lang, ok := i18n.Parse(code)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	if err := p.kv.Set(ctx, LanguageKey, string(lang)); err != nil {
		return "", err
	}
	return lang, nil
}
