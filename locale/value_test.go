package locale

import (
	"encoding/json"
	"testing"
)

func TestNormalizeCanonicalInputIsIdempotent(t *testing.T) {
	in := Value{VI: "Xin chào", EN: "Hello"}
	if got := Normalize(in); got != in {
		t.Fatalf("expected %+v, got %+v", in, got)
	}
	if got := Normalize(Normalize(in)); got != in {
		t.Fatalf("double normalize changed value: %+v", got)
	}
}

func TestNormalizeObjectForms(t *testing.T) {
	t.Run("map with both slots", func(t *testing.T) {
		got := Normalize(map[string]any{"vi": "a", "en": "b"})
		if got.VI != "a" || got.EN != "b" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("map with missing slot", func(t *testing.T) {
		got := Normalize(map[string]any{"vi": "a"})
		if got.VI != "a" || got.EN != "" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("map with nil slot", func(t *testing.T) {
		got := Normalize(map[string]any{"vi": "a", "en": nil})
		if got.VI != "a" || got.EN != "" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("nil pointer", func(t *testing.T) {
		var v *Value
		if got := Normalize(v); !got.IsEmpty() {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestNormalizeJSONString(t *testing.T) {
	encoded, err := json.Marshal(map[string]string{"vi": "a", "en": "b"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := Normalize(string(encoded))
	if got.VI != "a" || got.EN != "b" {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalizeLegacyStringFallback(t *testing.T) {
	cases := []string{
		"plain legacy content",
		"{not valid json",
		`"just a json string"`,
		`{"other":"shape"}`,
		`[1,2,3]`,
	}
	for _, raw := range cases {
		got := Normalize(raw)
		if got.VI != raw || got.EN != "" {
			t.Fatalf("Normalize(%q) = %+v", raw, got)
		}
	}
}

func TestNormalizeEmptyInputs(t *testing.T) {
	for _, raw := range []any{nil, "", 0, false} {
		if got := Normalize(raw); !got.IsEmpty() {
			t.Fatalf("Normalize(%v) = %+v", raw, got)
		}
	}
}

func TestResolveFallbackChain(t *testing.T) {
	cases := []struct {
		name string
		val  Value
		lang Language
		want string
	}{
		{"both empty", Value{}, Vietnamese, ""},
		{"vi requested, only en present", Value{EN: "B"}, Vietnamese, "B"},
		{"en requested, only vi present", Value{VI: "A"}, English, "A"},
		{"requested slot wins", Value{VI: "A", EN: "B"}, English, "B"},
		{"vi requested, vi present", Value{VI: "A", EN: "B"}, Vietnamese, "A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.val.Resolve(tc.lang); got != tc.want {
				t.Fatalf("Resolve(%+v, %q) = %q, want %q", tc.val, tc.lang, got, tc.want)
			}
		})
	}
}

func TestResolveFlatLegacyString(t *testing.T) {
	if got := Resolve("already flat", English); got != "already flat" {
		t.Fatalf("got %q", got)
	}
	if got := Resolve(nil, English); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := Resolve(map[string]any{"vi": "a"}, English); got != "a" {
		t.Fatalf("got %q", got)
	}
}

func TestUnmarshalJSONWireShapes(t *testing.T) {
	type record struct {
		Title Value `json:"title"`
	}

	cases := []struct {
		name string
		doc  string
		want Value
	}{
		{"object form", `{"title":{"vi":"a","en":"b"}}`, Value{VI: "a", EN: "b"}},
		{"json string form", `{"title":"{\"vi\":\"a\",\"en\":\"b\"}"}`, Value{VI: "a", EN: "b"}},
		{"legacy string form", `{"title":"chỉ tiếng Việt"}`, Value{VI: "chỉ tiếng Việt"}},
		{"null", `{"title":null}`, Value{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rec record
			if err := json.Unmarshal([]byte(tc.doc), &rec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if rec.Title != tc.want {
				t.Fatalf("got %+v, want %+v", rec.Title, tc.want)
			}
		})
	}
}

func TestWireStringRoundTrip(t *testing.T) {
	v := Value{VI: "Dự án", EN: "Project"}

	wire, err := v.WireString()
	if err != nil {
		t.Fatalf("WireString() error = %v", err)
	}
	if got := Normalize(wire); got != v {
		t.Fatalf("round trip produced %+v", got)
	}
}

func TestParseLanguage(t *testing.T) {
	if got := ParseLanguage("en"); got != English {
		t.Fatalf("got %q", got)
	}
	for _, raw := range []string{"vi", "", "fr"} {
		if got := ParseLanguage(raw); got != Vietnamese {
			t.Fatalf("ParseLanguage(%q) = %q", raw, got)
		}
	}
}
