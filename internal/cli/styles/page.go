package styles

import (
	"fmt"

	"github.com/bnema/bilishell/internal/domain/entity"
)

// RenderClassification formats the result of classifying one URL.
func (t *Theme) RenderClassification(rawURL string, page entity.Page) string {
	line := fmt.Sprintf("%s %s", t.PageBadge(page), t.Normal.Render(rawURL))
	if page.ID != "" {
		line += fmt.Sprintf("\n  %s %s", t.Subtle.Render("id"), t.Highlight.Render(page.ID))
	}
	return line
}

// RenderSearchURL formats a built search URL.
func (t *Theme) RenderSearchURL(keyword, searchURL string) string {
	return fmt.Sprintf("%s %s\n  %s %s",
		t.Highlight.Render(IconSearch),
		t.Normal.Render(keyword),
		t.Subtle.Render(IconArrow),
		t.Normal.Render(searchURL),
	)
}
