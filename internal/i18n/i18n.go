package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// Bundle holds one flat key/value dictionary per supported language.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported []string
	matcher   language.Matcher
}

// Load reads <dir>/<lang>.json for every supported language. Only the fallback file is
// mandatory; the fallback is always treated as supported and preferred on ties.
func Load(dir string, fallback string, supported []string) (*Bundle, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = "en"
	}
	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
	}
	langs := []string{fallback}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && l != fallback && !containsLang(langs, l) {
			langs = append(langs, l)
		}
	}
	for _, l := range langs {
		path := filepath.Join(dir, l+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			// allow missing file for non-default locales
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
		b.supported = append(b.supported, l)
	}

	tags := make([]language.Tag, 0, len(b.supported))
	for _, l := range b.supported {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", l, err)
		}
		tags = append(tags, tag)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func containsLang(list []string, l string) bool {
	for _, v := range list {
		if v == l {
			return true
		}
	}
	return false
}

// Supported returns the loaded languages, fallback first.
func (b *Bundle) Supported() []string {
	return append([]string(nil), b.supported...)
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// Match maps a language code such as "zh-CN" or "EN" onto a loaded language.
func (b *Bundle) Match(lang string) (string, bool) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "", false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	code := base.String()
	if containsLang(b.supported, code) {
		return code, true
	}
	return "", false
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.Lookup(lang, key); ok {
		return v
	}
	return key
}

// Lookup returns the translation for key in lang or the fallback language.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Resolve chooses the best loaded language for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(b.supported) {
		return b.fallback
	}
	return b.supported[idx]
}
