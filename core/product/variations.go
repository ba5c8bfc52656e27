package product

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ParseVariations decodes a catalog variations column. The field is
// vendor-authored and historically sloppy: it may be absent, JSON null, a
// double-encoded JSON string, or outright malformed. Anything that cannot
// be decoded yields an empty list rather than an error.
func ParseVariations(raw []byte) []Variant {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("{}")) {
		return nil
	}

	// Some rows store the array re-encoded as a JSON string.
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil
		}
		raw = []byte(inner)
	}

	var vs []Variant
	if err := json.Unmarshal(raw, &vs); err != nil {
		return nil
	}
	return vs
}

// VariantKey derives the stable identifier for a variant: explicit key,
// else id, else SKU, else its position in the list.
func VariantKey(v Variant, index int) string {
	switch {
	case v.Key != "":
		return v.Key
	case v.ID != "":
		return v.ID
	case v.SKU != "":
		return v.SKU
	default:
		return strconv.Itoa(index)
	}
}

// MatchVariant finds the catalog variant whose derived key equals key.
func MatchVariant(vs []Variant, key string) (Variant, bool) {
	if key == "" {
		return Variant{}, false
	}
	for i, v := range vs {
		if VariantKey(v, i) == key {
			return v, true
		}
	}
	return Variant{}, false
}
