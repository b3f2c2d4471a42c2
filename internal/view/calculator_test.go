package view_test

import (
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/msomdec/knitshape/internal/view"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(t.Context(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestShapingErrorFragment_EscapesMessage(t *testing.T) {
	got := render(t, view.ShapingErrorFragment("straight-result", `unknown distribution "<script>"`))

	want := `<div id="straight-result"><p class="invalid">unknown distribution &#34;&lt;script&gt;&#34;</p></div>`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSharedResultPage_ShowsExpiry(t *testing.T) {
	expires := time.Date(2026, time.March, 4, 23, 0, 0, 0, time.UTC)
	got := render(t, view.SharedResultPage("Crew <neck>", view.ShapingErrorFragment("neck-result", "x"), "-5 & more", expires))

	for _, want := range []string{"<h1>Crew &lt;neck&gt;</h1>", "<pre>-5 &amp; more</pre>", `<p class="expiry">Link expires 4 March 2026</p>`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected page to contain %q, got %s", want, got)
		}
	}
}

func TestSharedResultPage_NoExpiry(t *testing.T) {
	got := render(t, view.SharedResultPage("Shared", view.ShapingErrorFragment("neck-result", "x"), "", time.Time{}))

	if strings.Contains(got, "Link expires") {
		t.Fatalf("expected no expiry line, got %s", got)
	}
}
