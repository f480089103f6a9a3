package catalog

import "testing"

func TestResolveAssetURL(t *testing.T) {
	cases := []struct {
		name string
		path string
		base string
		want string
	}{
		{"relative path gets prefixed", "/uploads/x.png", "http://api.example.com", "http://api.example.com/uploads/x.png"},
		{"absolute http passes through", "http://cdn/x.png", "http://api.example.com", "http://cdn/x.png"},
		{"absolute https passes through", "https://cdn/x.png", "http://api.example.com", "https://cdn/x.png"},
		{"empty path resolves to nothing", "", "http://api.example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveAssetURL(tc.path, tc.base); got != tc.want {
				t.Fatalf("ResolveAssetURL(%q, %q) = %q, want %q", tc.path, tc.base, got, tc.want)
			}
		})
	}
}
