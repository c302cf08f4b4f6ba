package multilang

import (
	"encoding/json"
	"strings"
)

// arrayBacked stores the locale map as a JSON object. Used in simulated
// multilang mode where no translation plugin owns the storage format.
type arrayBacked struct {
	base
}

func (a *arrayBacked) Encode(names map[string]string) string {
	kept := make(map[string]string, len(names))
	for locale, v := range names {
		if a.has(locale) && v != "" {
			kept[locale] = v
		}
	}
	if len(kept) == 0 {
		return ""
	}
	b, err := json.Marshal(kept)
	if err != nil {
		return ""
	}
	return string(b)
}

func (a *arrayBacked) Decode(encoded, locale string) string {
	all := a.DecodeAll(encoded)
	if locale == "" {
		locale = a.def
	}
	if v, ok := all[locale]; ok {
		return v
	}
	return all[a.def]
}

func (a *arrayBacked) DecodeAll(encoded string) map[string]string {
	if encoded == "" {
		return map[string]string{}
	}
	var all map[string]string
	if err := json.Unmarshal([]byte(encoded), &all); err != nil {
		// Plain string written before multilang was enabled.
		return map[string]string{a.def: encoded}
	}
	return all
}

// blockBacked handles delimiter-block formats: the qtranslate-style
// "[:en]Name[:fr]Nom[:]" used by WP Multilang and the legacy
// "<!--:en-->Name<!--:-->" comment blocks used by WPML string storage.
type blockBacked struct {
	base
	open  func(locale string) string
	close string
}

func (b *blockBacked) Encode(names map[string]string) string {
	var sb strings.Builder
	// Configured locale order keeps the composed string stable.
	for _, locale := range b.locales {
		v := names[locale]
		if v == "" {
			continue
		}
		sb.WriteString(b.open(locale))
		sb.WriteString(v)
	}
	if sb.Len() == 0 {
		return ""
	}
	sb.WriteString(b.close)
	return sb.String()
}

func (b *blockBacked) Decode(encoded, locale string) string {
	all := b.DecodeAll(encoded)
	if locale == "" {
		locale = b.def
	}
	if v, ok := all[locale]; ok {
		return v
	}
	return all[b.def]
}

func (b *blockBacked) DecodeAll(encoded string) map[string]string {
	if encoded == "" {
		return map[string]string{}
	}

	marked := false
	for _, locale := range b.locales {
		if strings.Contains(encoded, b.open(locale)) {
			marked = true
			break
		}
	}
	if !marked {
		// Plain string without locale markers.
		return map[string]string{b.def: encoded}
	}

	all := make(map[string]string)
	rest := encoded
	for {
		locale, start := b.nextMarker(rest)
		if start < 0 {
			break
		}
		rest = rest[start+len(b.open(locale)):]

		end := len(rest)
		if _, next := b.nextMarker(rest); next >= 0 && next < end {
			end = next
		}
		if c := strings.Index(rest, b.close); c >= 0 && c < end {
			end = c
		}
		all[locale] = rest[:end]
		rest = rest[end:]
	}
	return all
}

// nextMarker finds the earliest opening marker for any configured
// locale, returning its locale and byte offset, or -1 when none remain.
func (b *blockBacked) nextMarker(s string) (string, int) {
	found := ""
	at := -1
	for _, locale := range b.locales {
		if i := strings.Index(s, b.open(locale)); i >= 0 && (at < 0 || i < at) {
			found, at = locale, i
		}
	}
	return found, at
}
