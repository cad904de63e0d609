package walker

import "testing"

func TestIsBinary(t *testing.T) {
	cases := []struct {
		name   string
		sample []byte
		want   bool
	}{
		{"text", []byte("package main\n\nfunc main() {}\n"), false},
		{"null byte", []byte("abc\x00def"), true},
		{"png magic", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, true},
		{"empty", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBinary(tc.sample); got != tc.want {
				t.Errorf("IsBinary(%q) = %v, want %v", tc.sample, got, tc.want)
			}
		})
	}
}
