package imgwpib

import (
	"bytes"
	"strconv"
	"strings"
)

// optionalFloat decodes upstream numeric fields that arrive as JSON strings,
// numbers, or null. Unparsable content decodes to absent rather than failing
// the whole payload.
type optionalFloat struct {
	value *float64
}

func (f *optionalFloat) UnmarshalJSON(data []byte) error {
	f.value = nil
	s := unquote(data)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.value = &v
	return nil
}

// optionalInt is the integer counterpart of optionalFloat, used for alert
// probabilities.
type optionalInt struct {
	value *int
}

func (i *optionalInt) UnmarshalJSON(data []byte) error {
	i.value = nil
	s := unquote(data)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	i.value = &v
	return nil
}

// unquote strips surrounding JSON quotes and whitespace, mapping null to "".
func unquote(data []byte) string {
	s := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if s == "null" {
		return ""
	}
	return s
}
