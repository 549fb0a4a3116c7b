package url

import (
	"testing"

	"github.com/bnema/bilishell/internal/domain/entity"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(entity.BilibiliProfile())

	tests := []struct {
		name string
		url  string
		want entity.Page
	}{
		{
			name: "watch page with query",
			url:  "https://www.bilibili.com/video/BV1xyz/?p=1",
			want: entity.Page{Kind: entity.PageVideoWatch, ID: "BV1xyz"},
		},
		{
			name: "watch page without trailing slash",
			url:  "https://www.bilibili.com/video/BV1GJ411x7h7",
			want: entity.Page{Kind: entity.PageVideoWatch, ID: "BV1GJ411x7h7"},
		},
		{
			name: "watch page with tracking param",
			url:  "https://www.bilibili.com/video/BV1xyz/?spm_id_from=333.1007&vd_source=abc",
			want: entity.Page{Kind: entity.PageVideoWatch, ID: "BV1xyz"},
		},
		{
			name: "watch page subdomain host",
			url:  "https://m.www.bilibili.com/video/BV1abc",
			want: entity.Page{Kind: entity.PageVideoWatch, ID: "BV1abc"},
		},
		{
			name: "watch prefix without id",
			url:  "https://www.bilibili.com/video/",
			want: entity.Page{Kind: entity.PageOther},
		},
		{
			name: "watch path on foreign host",
			url:  "https://www.example.com/video/BV1xyz",
			want: entity.Page{Kind: entity.PageOther},
		},
		{
			name: "lookalike host",
			url:  "https://evilwww.bilibili.com/video/BV1xyz",
			want: entity.Page{Kind: entity.PageOther},
		},
		{
			name: "bangumi episode",
			url:  "https://www.bilibili.com/bangumi/play/ep733316?from_spmid=666.25",
			want: entity.Page{Kind: entity.PageBangumiEpisode, ID: "ep733316"},
		},
		{
			name: "home without slash",
			url:  "https://www.bilibili.com",
			want: entity.Page{Kind: entity.PageHome},
		},
		{
			name: "home with slash",
			url:  "https://www.bilibili.com/",
			want: entity.Page{Kind: entity.PageHome},
		},
		{
			name: "home with tracking param",
			url:  "https://www.bilibili.com/?vd_source=abc",
			want: entity.Page{Kind: entity.PageHome},
		},
		{
			name: "search page",
			url:  "https://search.bilibili.com/all?keyword=cats&from_source=webtop_search",
			want: entity.Page{Kind: entity.PageSearch},
		},
		{
			name: "search path without keyword",
			url:  "https://search.bilibili.com/all",
			want: entity.Page{Kind: entity.PageOther},
		},
		{
			name: "other site page",
			url:  "https://space.bilibili.com/12345",
			want: entity.Page{Kind: entity.PageOther},
		},
		{
			name: "malformed",
			url:  "http://[::1",
			want: entity.Page{Kind: entity.PageOther},
		},
		{
			name: "no host",
			url:  "/video/BV1xyz",
			want: entity.Page{Kind: entity.PageOther},
		},
		{
			name: "empty",
			url:  "",
			want: entity.Page{Kind: entity.PageOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.url)
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassifier_WatchIDFollowsPrefix(t *testing.T) {
	c := NewClassifier(entity.BilibiliProfile())

	ids := []string{"BV1xyz", "BV1GJ411x7h7", "av170001", "x"}
	for _, id := range ids {
		for _, suffix := range []string{"", "/", "/?p=2", "?t=30", "/extra/segments"} {
			raw := "https://www.bilibili.com/video/" + id + suffix
			got := c.Classify(raw)
			if got.Kind != entity.PageVideoWatch || got.ID != id {
				t.Errorf("Classify(%q) = %v, want video(%s)", raw, got, id)
			}
		}
	}
}

func TestClassifier_IgnoresQueryForPathRules(t *testing.T) {
	c := NewClassifier(entity.BilibiliProfile())

	got := c.Classify("https://www.bilibili.com/list?next=/video/BV1xyz")
	if got.Kind == entity.PageVideoWatch {
		t.Errorf("query string must not drive classification, got %v", got)
	}
}
