// Package valuefmt renders scalar schema values to the string form used to
// key option labels and match order tokens.
package valuefmt

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// String returns the string form of v. Distinct values may share a string
// form (1, 1.0 and "1" all render as "1"); name tables and order tokens rely
// on exactly that collapse. Floats use plain decimal notation for magnitudes
// in [1e-6, 1e21) and a compact exponent otherwise.
func String(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case json.Number:
		return value.String()
	case float64:
		return formatFloat(value, 64)
	case float32:
		return formatFloat(float64(value), 32)
	case int:
		return strconv.Itoa(value)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(value).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(value).Uint(), 10)
	case fmt.Stringer:
		return value.String()
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(payload)
}

func formatFloat(value float64, bits int) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}
	if value == 0 {
		return "0"
	}
	if abs := math.Abs(value); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(value, 'f', -1, bits)
	}
	// Exponent form without zero padding: 1e-7, 1.5e+300.
	formatted := strconv.FormatFloat(value, 'e', -1, bits)
	mantissa, exponent, _ := strings.Cut(formatted, "e")
	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
