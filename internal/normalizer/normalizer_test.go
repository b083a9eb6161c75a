package normalizer

import "testing"

func TestStripMarkupAndPunctuation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "  \n\t ", ""},
		{"plain sentence", "The cat sat on the mat. The cat ran.", "the cat sat on the mat the cat ran"},
		{"tags", "<p>Hello <b>World</b></p>", "hello world"},
		{"adjacent blocks", "<p>one</p><p>two</p>", "one two"},
		{"script and style", "<style>p{}</style>news<script>var x = 1;</script> today", "news today"},
		{"entities", "Fish &amp; Chips&nbsp;Shop", "fish chips shop"},
		{"apostrophes", "Don't stop, it’s fine", "dont stop its fine"},
		{"hyphens and dashes", "state-of-the-art — again", "state of the art again"},
		{"digits kept", "G20 summit, 2024!", "g20 summit 2024"},
		{"unicode letters", "Café in Zürich", "café in zürich"},
		{"lone angle bracket", "a < b", "a b"},
		{"link", `<a href="https://example.com/x?y=1">Read more...</a>`, "read more"},
	}

	n := New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := n.StripMarkupAndPunctuation(c.in); got != c.want {
				t.Fatalf("StripMarkupAndPunctuation(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestStripPunctuationCollapsesWhitespace(t *testing.T) {
	got := StripPunctuation("  alpha,\n\n beta\t\t...gamma  ")
	if got != "alpha beta gamma" {
		t.Fatalf("StripPunctuation = %q", got)
	}
}

func TestFunc(t *testing.T) {
	var n Normalizer = Func(func(s string) string { return "x" + s })
	if got := n.StripMarkupAndPunctuation("y"); got != "xy" {
		t.Fatalf("Func = %q", got)
	}
}
