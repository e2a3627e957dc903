package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeField(t *testing.T) {
	raw := `["a|b","c"]`
	escaped := EscapeField(raw)

	assert.NotContains(t, escaped, FieldSeparator)
	assert.Equal(t, raw, UnescapeField(escaped))
	assert.Equal(t, 1, strings.Count(escaped, EscapedPipe))
}

func TestEscapedPipe_IsJSONEscape(t *testing.T) {
	v, err := ParseValue(`"` + EscapedPipe + `"`)
	assert.NoError(t, err)
	assert.Equal(t, FieldSeparator, v.AsString())
}

func TestUnescapeField_KeepsEscapedBackslash(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"literal escape text", `\u007c`},
		{"plain pipe", `a|b`},
		{"backslash then pipe", `\|`},
		{"double backslash then literal", `\\u007c|`},
		{"trailing backslash", `x\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := String(tt.raw).String()
			field := EscapeField(text)
			assert.NotContains(t, field, FieldSeparator)

			back := UnescapeField(field)
			assert.Equal(t, text, back)

			v, err := ParseValue(back)
			assert.NoError(t, err)
			assert.Equal(t, tt.raw, v.AsString())
		})
	}
}
