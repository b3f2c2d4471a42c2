package view

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/msomdec/knitshape/internal/domain"
)

// CalculatorSignals is the datastar signal state of the calculator page.
type CalculatorSignals struct {
	Stitches     int    `json:"stitches"`
	Rows         int    `json:"rows"`
	Distribution string `json:"distribution"`
	Operation    string `json:"operation"`
	PerSide      int    `json:"perSide"`
}

// CalculatorPage renders the calculator with both result panels pre-filled.
// Every input change posts the signals back and the server patches the
// matching result fragment.
func CalculatorPage(signals CalculatorSignals, straight domain.ShapingResult, neck domain.CrewNeckResult) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		state, err := json.Marshal(signals)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<main data-signals="%s">
<h1>Machine knit shaping</h1>
<fieldset data-on:input__debounce.150ms="@post('/shaping/straight')">
<legend>Straight line</legend>
<label>Stitches <input type="number" min="1" data-bind:stitches></label>
<label>Rows <input type="number" min="1" data-bind:rows></label>
<label>Operation <select data-bind:operation><option value="decrease">Decrease</option><option value="increase">Increase</option></select></label>
<label>Start <select data-bind:distribution><option value="aggressive">Aggressive</option><option value="gentle">Gentle</option></select></label>
`, templ.EscapeString(string(state))); err != nil {
			return err
		}
		if err := StraightResultFragment(straight, "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `
</fieldset>
<fieldset data-on:input__debounce.150ms="@post('/shaping/neck')">
<legend>Crew neck (per side)</legend>
<label>Stitches <input type="number" min="1" data-bind:per-side></label>
`); err != nil {
			return err
		}
		if err := CrewNeckResultFragment(neck, "").Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n</fieldset>\n</main>")
		return err
	})
	return Layout("Machine knit shaping", body)
}

// StraightResultFragment renders the #straight-result panel. A non-empty
// shareURL adds a permanent link to the result.
func StraightResultFragment(res domain.ShapingResult, shareURL string) templ.Component {
	return resultFragment("straight-result", res.IsValid, res.Notation, res.Instructions, res.Warnings,
		fmt.Sprintf("%d rows used", res.TotalRowsUsed), shareURL)
}

// CrewNeckResultFragment renders the #neck-result panel.
func CrewNeckResultFragment(res domain.CrewNeckResult, shareURL string) templ.Component {
	summary := fmt.Sprintf("cast off %d, every row %d, every other row %d; %d rows used",
		res.CastOff, res.EveryRowDecrease, res.EORDecrease, res.TotalRowsUsed)
	return resultFragment("neck-result", res.IsValid, res.Notation, res.Instructions, res.Warnings, summary, shareURL)
}

func resultFragment(id string, valid bool, notation string, instructions, warnings []string, summary, shareURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, `<div id="%s">`, templ.EscapeString(id))
		if !valid {
			sb.WriteString(`<p class="invalid">`)
			sb.WriteString(templ.EscapeString(strings.Join(instructions, " ")))
			sb.WriteString(`</p>`)
		} else {
			fmt.Fprintf(&sb, `<p class="notation">%s</p><p>%s</p><ol>`,
				templ.EscapeString(notation), templ.EscapeString(summary))
			for _, line := range instructions {
				fmt.Fprintf(&sb, "<li>%s</li>", templ.EscapeString(line))
			}
			sb.WriteString("</ol>")
		}
		if len(warnings) > 0 {
			sb.WriteString(`<ul class="warning">`)
			for _, line := range warnings {
				fmt.Fprintf(&sb, "<li>%s</li>", templ.EscapeString(line))
			}
			sb.WriteString("</ul>")
		}
		if shareURL != "" {
			fmt.Fprintf(&sb, `<p><a href="%s">Permanent link</a></p>`, templ.EscapeString(shareURL))
		}
		sb.WriteString("</div>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// ShapingErrorFragment replaces the result panel with id with an error
// message, for signals the server could not read.
func ShapingErrorFragment(id, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="%s"><p class="invalid">%s</p></div>`,
			templ.EscapeString(id), templ.EscapeString(message))
		return err
	})
}

// SharedResultPage renders a shared calculation with a copyable plain-text
// version of the result and the date the link stops working.
func SharedResultPage(title string, result templ.Component, text string, expiresAt time.Time) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<main><h1>%s</h1>\n", templ.EscapeString(title)); err != nil {
			return err
		}
		if err := result.Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n<pre>%s</pre>\n", templ.EscapeString(text)); err != nil {
			return err
		}
		if !expiresAt.IsZero() {
			if _, err := fmt.Fprintf(w, "<p class=\"expiry\">Link expires %s</p>\n",
				templ.EscapeString(expiresAt.UTC().Format("2 January 2006"))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<p><a href="/">Open the calculator</a></p></main>`)
		return err
	})
	return Layout(title, body)
}
