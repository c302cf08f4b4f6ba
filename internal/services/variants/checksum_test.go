package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleAttrs() map[string]ValuePayload {
	return map[string]ValuePayload{
		"color": {Slug: "red", Name: `{"en_US":"Red","fr_FR":"Rouge"}`},
		"size":  {Slug: "xl", Name: "XL"},
	}
}

func TestChecksumIsDeterministic(t *testing.T) {
	first := Checksum("Shirt", "SH-001", sampleAttrs())
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Checksum("Shirt", "SH-001", sampleAttrs()))
	}
}

func TestChecksumChangesWithEachInput(t *testing.T) {
	base := Checksum("Shirt", "SH-001", sampleAttrs())

	assert.NotEqual(t, base, Checksum("Hat", "SH-001", sampleAttrs()))
	assert.NotEqual(t, base, Checksum("Shirt", "SH-002", sampleAttrs()))

	// A value rename changes the checksum even when the slug stays.
	renamed := sampleAttrs()
	renamed["color"] = ValuePayload{Slug: "red", Name: `{"en_US":"Crimson","fr_FR":"Rouge"}`}
	assert.NotEqual(t, base, Checksum("Shirt", "SH-001", renamed))
}

func TestChecksumIgnoresAttributeInsertionOrder(t *testing.T) {
	a := map[string]ValuePayload{
		"color": {Slug: "red", Name: "Red"},
		"size":  {Slug: "xl", Name: "XL"},
	}
	b := map[string]ValuePayload{
		"size":  {Slug: "xl", Name: "XL"},
		"color": {Slug: "red", Name: "Red"},
	}
	assert.Equal(t, Checksum("Shirt", "SH-001", a), Checksum("Shirt", "SH-001", b))
}

func TestChecksumOfPlainProduct(t *testing.T) {
	a := Checksum("Mug", "MUG-1", nil)
	b := Checksum("Mug", "MUG-1", map[string]ValuePayload{})
	assert.Equal(t, a, b)
}

func TestDebugStringCarriesTheHashedStructure(t *testing.T) {
	debug := DebugString("Shirt", "SH-001", sampleAttrs())

	assert.Contains(t, debug, "Shirt")
	assert.Contains(t, debug, "SH-001")
	assert.Contains(t, debug, "red")

	// Same inputs, same assembled structure.
	assert.Equal(t, debug, DebugString("Shirt", "SH-001", sampleAttrs()))
}
