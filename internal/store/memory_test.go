package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/sabia-weather/internal/i18n"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, LanguageKey, "pt")
			_, _ = s.Get(ctx, LanguageKey)
		}()
	}
	wg.Wait()

	v, err := s.Get(ctx, LanguageKey)
	require.NoError(t, err)
	assert.Equal(t, "pt", v)
}

func TestPreferences_Language(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	p := NewPreferences(kv)

	lang, err := p.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang, "default when unset")

	got, err := p.SetLanguage(ctx, "ES")
	require.NoError(t, err)
	assert.Equal(t, i18n.Spanish, got)

	lang, err = p.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, i18n.Spanish, lang)

	_, err = p.SetLanguage(ctx, "fr")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	lang, _ = p.Language(ctx)
	assert.Equal(t, i18n.Spanish, lang, "rejected value must not overwrite")
}

func TestPreferences_IgnoresCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, LanguageKey, "klingon"))

	lang, err := NewPreferences(kv).Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang)
}
