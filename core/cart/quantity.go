package cart

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// parseQuantity reads a client-supplied quantity that may arrive as a JSON
// number, a numeric string, or garbage. Unparseable input and values below
// floor silently become fallback; this leniency is deliberate policy, not
// error swallowing.
func parseQuantity(raw json.RawMessage, fallback, floor int) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fallback
	}

	s := string(raw)
	if s[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return fallback
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fallback
		}
		n = int(f)
	}

	if n < floor {
		return fallback
	}
	return n
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
