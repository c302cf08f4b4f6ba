// Package multilang composes and splits locale-keyed display names the
// way the store's translation plugins persist them. Everything above the
// store layer depends only on the Translator interface, never on a
// specific storage format.
package multilang

import (
	"fmt"
)

// Translator encodes a locale-keyed name map into the single string the
// store persists, and extracts one locale's value back out of it.
type Translator interface {
	// Encode composes the storage string from a locale-keyed map.
	// Locales the translator is not configured for are dropped.
	Encode(names map[string]string) string

	// Decode extracts the given locale's value from a storage string.
	// Plain strings without locale markers decode to themselves.
	Decode(encoded, locale string) string

	// DecodeAll splits a storage string into a locale-keyed map. A
	// plain string maps to the default locale only.
	DecodeAll(encoded string) map[string]string

	Locales() []string
	DefaultLocale() string
}

// Modes accepted by New.
const (
	ModeDisabled = "disabled"
	ModeArray    = "array"
	ModeWpmu     = "wpmu"
	ModeWpml     = "wpml"
)

// New selects the translator for the configured multilang mode.
func New(mode, defaultLocale string, locales []string) (Translator, error) {
	if defaultLocale == "" {
		return nil, fmt.Errorf("multilang: default locale is required")
	}
	if len(locales) == 0 {
		locales = []string{defaultLocale}
	}

	switch mode {
	case ModeDisabled, "":
		return &disabled{locale: defaultLocale}, nil
	case ModeArray:
		return &arrayBacked{base: base{def: defaultLocale, locales: locales}}, nil
	case ModeWpmu:
		return &blockBacked{
			base:  base{def: defaultLocale, locales: locales},
			open:  func(l string) string { return "[:" + l + "]" },
			close: "[:]",
		}, nil
	case ModeWpml:
		return &blockBacked{
			base:  base{def: defaultLocale, locales: locales},
			open:  func(l string) string { return "<!--:" + l + "-->" },
			close: "<!--:-->",
		}, nil
	}
	return nil, fmt.Errorf("multilang: unknown mode %q", mode)
}

type base struct {
	def     string
	locales []string
}

func (b *base) Locales() []string     { return b.locales }
func (b *base) DefaultLocale() string { return b.def }

func (b *base) has(locale string) bool {
	for _, l := range b.locales {
		if l == locale {
			return true
		}
	}
	return false
}

// disabled is the single-language passthrough: the default locale's
// value is the storage string.
type disabled struct {
	locale string
}

func (d *disabled) Encode(names map[string]string) string {
	return names[d.locale]
}

func (d *disabled) Decode(encoded, locale string) string {
	if locale != "" && locale != d.locale {
		return ""
	}
	return encoded
}

func (d *disabled) DecodeAll(encoded string) map[string]string {
	if encoded == "" {
		return map[string]string{}
	}
	return map[string]string{d.locale: encoded}
}

func (d *disabled) Locales() []string     { return []string{d.locale} }
func (d *disabled) DefaultLocale() string { return d.locale }
