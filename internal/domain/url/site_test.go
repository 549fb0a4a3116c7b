package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/bilishell/internal/domain/entity"
)

func TestResolveStartURL(t *testing.T) {
	site := entity.BilibiliProfile()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty is home", input: "", want: "https://www.bilibili.com"},
		{name: "blank is home", input: "   ", want: "https://www.bilibili.com"},
		{name: "bare host", input: "www.bilibili.com/video/BV1xx411c7mD", want: "https://www.bilibili.com/video/BV1xx411c7mD"},
		{name: "search subdomain", input: "https://search.bilibili.com/all?keyword=a", want: "https://search.bilibili.com/all?keyword=a"},
		{name: "apex", input: "bilibili.com", want: "https://bilibili.com"},
		{name: "other site", input: "https://example.com", wantErr: true},
		{name: "lookalike", input: "https://notbilibili.com", wantErr: true},
		{name: "not a url", input: "hello world", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStartURL(site, tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrOffSite)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
