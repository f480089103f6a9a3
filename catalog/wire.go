package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The backend stores whatever shape the last writer submitted. Form
// submissions leave booleans as "1"/"0", counters as digit strings, and
// string lists as JSON-encoded array strings, while JSON submissions
// store native values. These types accept every stored shape on decode
// and always emit the native shape.

// Flag is a boolean tolerant of form-encoded truth values.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*f = Flag(v)
	case float64:
		*f = v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true":
			*f = true
		default:
			*f = false
		}
	default:
		*f = false
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Ordinal is an integer tolerant of its form-encoded string shape.
type Ordinal int

func (o *Ordinal) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*o = Ordinal(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			*o = 0
			return nil
		}
		*o = Ordinal(n)
	default:
		*o = 0
	}
	return nil
}

func (o Ordinal) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(o))
}

// StringList is a string slice tolerant of the JSON-encoded array
// string that multipart submissions leave behind.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*l = nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		*l = out
	case string:
		if strings.TrimSpace(v) == "" {
			*l = nil
			return nil
		}
		var nested []string
		if err := json.Unmarshal([]byte(v), &nested); err != nil {
			*l = nil
			return nil
		}
		*l = nested
	default:
		*l = nil
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}
