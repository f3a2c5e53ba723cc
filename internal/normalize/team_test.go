package normalize

import "testing"

func TestDeriveTeamCode(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"South Africa", "SA"},
		{"Royal Challengers Bangalore", "RCB"},
		{"India", "IND"},
		{"RSA", "RSA"},
		{"new zealand", "NZ"},
		{"Trinbago Knight Riders Club Team", "TRI"},
		{"St. Lucia", "SL"},
		{"Pk", "PK"},
		{"", ""},
		{"123", ""},
	}
	for _, tc := range cases {
		if got := DeriveTeamCode(tc.name); got != tc.want {
			t.Fatalf("DeriveTeamCode(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
