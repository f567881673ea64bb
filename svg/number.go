package svg

import (
	"strconv"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// pathDecimals is enough to print any multiple of 1/256 exactly.
const pathDecimals = 8

// appendCoord appends a quantized path coordinate in plain decimal
// notation without trailing zeros.
func appendCoord(b []byte, v float32) []byte {
	return pstrconv.AppendDecimal(b, float64(v), pathDecimals)
}

// formatNumber returns the shortest decimal that reads back as v.
func formatNumber(v float32) string {
	if v == 0 {
		// Avoid "-0".
		return "0"
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
