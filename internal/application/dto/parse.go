package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPrice mayor precio representable en NUMERIC(12,2).
var MaxPrice = decimal.RequireFromString("9999999999.99")

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// IsMissing informa si el campo JSON no vino o vino como null.
func IsMissing(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// scalarText extrae el texto de un número JSON o de un string JSON.
// Booleanos, objetos y arreglos no son escalares válidos.
func scalarText(raw json.RawMessage) (string, error) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return "", fmt.Errorf("vacío")
	}
	switch c := t[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return string(t), nil
	default:
		return "", fmt.Errorf("tipo no numérico")
	}
}

// ParsePrice interpreta un precio desde número o string JSON: no negativo, como máximo MaxPrice,
// redondeado a 2 decimales.
func ParsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	text, err := scalarText(raw)
	if err != nil || text == "" {
		return decimal.Zero, fmt.Errorf("precio inválido")
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("precio inválido")
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("precio negativo")
	}
	d = d.Round(2)
	if d.GreaterThan(MaxPrice) {
		return decimal.Zero, fmt.Errorf("precio fuera de rango")
	}
	return d, nil
}

// ParseInt interpreta un entero desde número JSON entero (o integral, p. ej. 5.0) o string entero.
func ParseInt(raw json.RawMessage) (int64, error) {
	text, err := scalarText(raw)
	if err != nil || text == "" {
		return 0, fmt.Errorf("entero inválido")
	}
	t := bytes.TrimSpace(raw)
	if t[0] == '"' {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("entero inválido")
		}
		return n, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("entero inválido")
	}
	if d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
		return 0, fmt.Errorf("entero fuera de rango")
	}
	return d.IntPart(), nil
}

// ParseNonNegativeInt como ParseInt pero exige >= 0.
func ParseNonNegativeInt(raw json.RawMessage) (int64, error) {
	n, err := ParseInt(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("debe ser >= 0")
	}
	return n, nil
}
