package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Layout wraps body in the shared HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script type="module" src="%s"></script>
<style>
body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;color:#222}
fieldset{margin-bottom:1.5rem}
.notation{font-family:ui-monospace,monospace;font-size:1.4rem}
.warning{color:#9a5b00}
.invalid{color:#a00}
</style>
</head>
<body>
`, templ.EscapeString(title), templ.EscapeString(datastarScript)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}

// ErrorPage renders a full-page error message.
func ErrorPage(status int, title, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<main><h1>%d %s</h1><p>%s</p><p><a href=\"/\">Back to the calculator</a></p></main>",
			status, templ.EscapeString(title), templ.EscapeString(message))
		return err
	})
	return Layout(title, body)
}
