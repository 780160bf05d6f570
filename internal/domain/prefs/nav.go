// Package prefs normaliza el estado de UI persistido por usuario.
package prefs

import "encoding/json"

// NormalizeSectionKeys interpreta raw como array de claves de sección.
// Cualquier otra forma (objeto, escalar, JSON inválido) equivale a vacío.
// Descarta entradas que no son string o están vacías y elimina duplicados
// conservando el primer orden de aparición.
func NormalizeSectionKeys(raw json.RawMessage) []string {
	keys := []string{}
	if len(raw) == 0 {
		return keys
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return keys
	}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok || s == "" || seen[s] {
			continue
		}
		seen[s] = true
		keys = append(keys, s)
	}
	return keys
}

// EncodeSectionKeys normaliza keys y las serializa para persistir.
func EncodeSectionKeys(keys []string) json.RawMessage {
	clean := []string{}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		clean = append(clean, k)
	}
	b, _ := json.Marshal(clean)
	return b
}
