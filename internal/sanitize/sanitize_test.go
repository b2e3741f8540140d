package sanitize_test

import (
	"testing"

	"github.com/obrolan/chatbot-api/internal/sanitize"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "halo dunia", "halo dunia"},
		{"em dash", "satu—dua", "satu-dua"},
		{"en dash", "satu–dua", "satu-dua"},
		{"bold", "ini **penting** sekali", "ini penting sekali"},
		{"italic", "ini *miring* saja", "ini miring saja"},
		{"underscore bold", "ini __tebal__ juga", "ini tebal juga"},
		{"underscore italic", "kata _miring_ lagi", "kata miring lagi"},
		{"mixed", "This is **bold** and an em—dash", "This is bold and an em-dash"},
		{"whitespace", "  jawaban  \n", "jawaban"},
		{"asymmetric marker leaks", "setengah **tebal", "setengah **tebal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitize.Clean(tc.in)
			if got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"This is **bold** and an em—dash",
		"campuran *satu* dan __dua__ dengan – tanda",
		"  polos saja  ",
	}
	for _, in := range inputs {
		once := sanitize.Clean(in)
		twice := sanitize.Clean(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
