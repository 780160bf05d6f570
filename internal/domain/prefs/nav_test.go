package prefs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/businessos-api/internal/domain/prefs"
)

func TestNormalizeSectionKeys(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"vacío", ``, []string{}},
		{"array válido", `["crm","finance"]`, []string{"crm", "finance"}},
		{"objeto en lugar de array", `{"crm":true}`, []string{}},
		{"escalar", `"crm"`, []string{}},
		{"null", `null`, []string{}},
		{"json inválido", `[crm`, []string{}},
		{"mezcla de tipos", `["crm",1,null,{"a":1},"",true,"lms"]`, []string{"crm", "lms"}},
		{"duplicados", `["crm","lms","crm"]`, []string{"crm", "lms"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, prefs.NormalizeSectionKeys(json.RawMessage(tc.raw)))
		})
	}
}

func TestEncodeSectionKeys(t *testing.T) {
	raw := prefs.EncodeSectionKeys([]string{"crm", "", "crm", "tasks"})
	assert.JSONEq(t, `["crm","tasks"]`, string(raw))
	assert.JSONEq(t, `[]`, string(prefs.EncodeSectionKeys(nil)))
}
