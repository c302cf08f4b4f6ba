package variants

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ValuePayload is the full stored value carried into the checksum for
// one attribute group: the term slug and the raw stored name with every
// locale in it. Hashing the whole payload makes a value rename change
// the checksum, not just a re-slug.
type ValuePayload struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Checksum computes the identity fingerprint of a product from its base
// title, SKU and resolved attribute map. Pure function of its inputs:
// equal triples hash byte-identically on every call.
func Checksum(title, sku string, attrs map[string]ValuePayload) string {
	sum := sha256.Sum256(assemble(title, sku, attrs))
	return hex.EncodeToString(sum[:])
}

// DebugString renders the exact structure Checksum hashes, unhashed,
// for troubleshooting identity mismatches.
func DebugString(title, sku string, attrs map[string]ValuePayload) string {
	return string(assemble(title, sku, attrs))
}

// assemble builds the canonical serialized form of {title, sku,
// ...attrs}. encoding/json emits map keys sorted, which makes the
// output independent of attribute iteration order.
func assemble(title, sku string, attrs map[string]ValuePayload) []byte {
	merged := make(map[string]interface{}, len(attrs)+2)
	merged["title"] = title
	merged["sku"] = sku
	for code, v := range attrs {
		merged[code] = v
	}
	b, err := json.Marshal(merged)
	if err != nil {
		// Only unmarshalable values can trip json.Marshal; the
		// structure above is all strings.
		return []byte{}
	}
	return b
}
