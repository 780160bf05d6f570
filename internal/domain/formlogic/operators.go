package formlogic

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// Matches informa si el valor de respuesta satisface el operador contra value.
// Un valor ausente en el mapa de respuestas llega como nil y cuenta como vacío.
func Matches(op entity.RuleOperator, response, value any) bool {
	switch op {
	case entity.OpEquals:
		return strictEqual(response, value)
	case entity.OpNotEquals:
		return !strictEqual(response, value)
	case entity.OpContains:
		return contains(response, value)
	case entity.OpGreaterThan:
		a, b, ok := numericPair(response, value)
		return ok && a.GreaterThan(b)
	case entity.OpLessThan:
		a, b, ok := numericPair(response, value)
		return ok && a.LessThan(b)
	case entity.OpIsEmpty:
		return IsEmpty(response)
	case entity.OpIsNotEmpty:
		return !IsEmpty(response)
	default:
		return false
	}
}

// IsEmpty nil, "", y colecciones vacías son equivalentes.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	}
	return false
}

// strictEqual igualdad sensible al tipo: "5" != 5, pero 5 == 5.0 (ambos números).
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	an, aNum := asNumber(a)
	bn, bNum := asNumber(b)
	if aNum || bNum {
		return aNum && bNum && an.Equal(bn)
	}
	return reflect.DeepEqual(a, b)
}

func contains(response, value any) bool {
	if s, ok := response.(string); ok {
		needle, ok := value.(string)
		return ok && strings.Contains(s, needle)
	}
	rv := reflect.ValueOf(response)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map:
		// Respuesta tipo objeto JSON: se busca entre las claves.
		iter := rv.MapRange()
		for iter.Next() {
			if strictEqual(iter.Key().Interface(), value) {
				return true
			}
		}
		return false
	case reflect.Slice, reflect.Array:
	default:
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if strictEqual(rv.Index(i).Interface(), value) {
			return true
		}
	}
	return false
}

// numericPair convierte ambos operandos a decimal. Acepta strings numéricos
// porque los inputs de formulario llegan como texto.
func numericPair(a, b any) (decimal.Decimal, decimal.Decimal, bool) {
	an, ok := toDecimal(a)
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	bn, ok := toDecimal(b)
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	return an, bn, true
}

func toDecimal(v any) (decimal.Decimal, bool) {
	if n, ok := asNumber(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	}
	return decimal.Zero, false
}

// asNumber solo reconoce tipos numéricos de Go (no strings). NaN e infinitos
// no son comparables.
func asNumber(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		if rv.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)), true
		}
		return decimal.NewFromFloat(f), true
	}
	return decimal.Zero, false
}
