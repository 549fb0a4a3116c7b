package url

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "plain URL unchanged",
			input: "https://www.bilibili.com/video/BV1xyz/?p=1",
			want:  "https://www.bilibili.com/video/BV1xyz/?p=1",
		},
		{
			name:  "tracking param in the middle",
			input: "https://x/y?a=1&vd_source=abc&b=2",
			want:  "https://x/y?a=1&b=2",
		},
		{
			name:  "tracking param at the end",
			input: "https://www.bilibili.com/video/BV1xyz/?spm_id_from=333.1007&vd_source=0f9e8d",
			want:  "https://www.bilibili.com/video/BV1xyz/?spm_id_from=333.1007",
		},
		{
			name:  "tracking param first with followers",
			input: "https://x/y?vd_source=abc&b=2",
			want:  "https://x/y?b=2",
		},
		{
			name:  "tracking param alone",
			input: "https://x/y?vd_source=abc",
			want:  "https://x/y",
		},
		{
			name:  "empty tracking value",
			input: "https://x/y?a=1&vd_source=",
			want:  "https://x/y?a=1",
		},
		{
			name:  "encoded colon upper case",
			input: "https://x/y%3Afoo",
			want:  "https://x/y:foo",
		},
		{
			name:  "encoded colon lower case",
			input: "https://x/y%3afoo",
			want:  "https://x/y:foo",
		},
		{
			name:  "similar param name kept",
			input: "https://x/y?a=1&vd_sourcex=2",
			want:  "https://x/y?a=1&vd_sourcex=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonicalize(tt.input)
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"https://x/y?a=1&vd_source=abc&b=2",
		"https://x/y?vd_source=a&vd_source=b",
		"https://x/y?vd_source=a&x=1&vd_source=b",
		"https://x/y%3A%3afoo?vd_source=a",
		"https://www.bilibili.com/video/BV1xyz/?p=1&vd_source=z#reply",
		"%3A&vd_source=&vd_source=&",
	}

	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCanonicalEqual(t *testing.T) {
	if !CanonicalEqual("https://x/y?a=1&vd_source=abc&b=2", "https://x/y?a=1&b=2") {
		t.Error("tracking parameter must not affect equality")
	}
	if !CanonicalEqual("https://x/y%3Afoo", "https://x/y:foo") {
		t.Error("encoded colon must compare equal to literal colon")
	}
	if CanonicalEqual("https://x/y?a=1", "https://x/y?a=2") {
		t.Error("different query values must not compare equal")
	}
}
