package locale

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Language identifies one of the two content languages the portfolio
// stores. The set is closed: Vietnamese is the primary authoring
// language, English the secondary one.
type Language string

const (
	Vietnamese Language = "vi"
	English    Language = "en"
)

// ParseLanguage maps a raw code onto a supported language, defaulting to
// Vietnamese for anything it does not recognise.
func ParseLanguage(code string) Language {
	if code == string(English) {
		return English
	}
	return Vietnamese
}

// Value is the canonical in-memory form of a bilingual field. Both slots
// are always concrete strings; the empty string means "no content".
type Value struct {
	VI string `json:"vi"`
	EN string `json:"en"`
}

// Normalize coerces any persisted representation of a localized field
// into the canonical pair. Stored values arrive in three shapes: an
// already-parsed object, a JSON-encoded string wrapping that object, or
// a bare legacy string holding single-language content. Normalize is
// total: malformed input degrades to the legacy branch (whole string as
// the Vietnamese slot) and never produces an error.
func Normalize(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case *Value:
		if v == nil {
			return Value{}
		}
		return *v
	case map[string]string:
		return Value{VI: v["vi"], EN: v["en"]}
	case map[string]any:
		return Value{VI: stringSlot(v, "vi"), EN: stringSlot(v, "en")}
	case string:
		return normalizeString(v)
	default:
		return Value{}
	}
}

func normalizeString(raw string) Value {
	if raw == "" {
		return Value{}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		_, hasVI := obj["vi"]
		_, hasEN := obj["en"]
		if hasVI || hasEN {
			return Value{VI: stringSlot(obj, "vi"), EN: stringSlot(obj, "en")}
		}
	}

	// Legacy single-language record: the whole string is the VI content.
	return Value{VI: raw}
}

func stringSlot(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// UnmarshalJSON resolves the heterogeneous wire forms once at the decode
// boundary so nothing deeper in the call chain re-infers the shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*v = Value{}
			return nil
		}
		*v = normalizeString(raw)
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		*v = Value{}
		return nil
	}
	*v = Value{VI: stringSlot(obj, "vi"), EN: stringSlot(obj, "en")}
	return nil
}

// MarshalJSON always emits the canonical two-key object.
func (v Value) MarshalJSON() ([]byte, error) {
	type wire struct {
		VI string `json:"vi"`
		EN string `json:"en"`
	}
	return json.Marshal(wire{VI: v.VI, EN: v.EN})
}

// WireString serialises the value into the JSON-object-in-a-string form
// the backend stores inside form fields.
func (v Value) WireString() (string, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("locale: encode value: %w", err)
	}
	return string(data), nil
}

// Resolve picks the display string for the requested language. The
// fallback chain is fixed: requested slot, then English, then
// Vietnamese, then empty. English stays the secondary fallback even when
// Vietnamese was requested; callers must not assume "the other
// language".
func (v Value) Resolve(lang Language) string {
	if lang == English {
		if v.EN != "" {
			return v.EN
		}
	} else if v.VI != "" {
		return v.VI
	}
	if v.EN != "" {
		return v.EN
	}
	return v.VI
}

// IsEmpty reports whether neither slot carries content.
func (v Value) IsEmpty() bool {
	return v.VI == "" && v.EN == ""
}

// Equal reports whether both slots match.
func (v Value) Equal(other Value) bool {
	return v.VI == other.VI && v.EN == other.EN
}

// Resolve picks a display string from a raw stored value. Flat legacy
// strings pass through unchanged; everything else is normalized first.
func Resolve(raw any, lang Language) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return Normalize(raw).Resolve(lang)
	}
}
