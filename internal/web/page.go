package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// IndexPage renders the HTML shell for the code-explainer UI: a code
// textarea, a language selector and the container the client fills with
// the returned explanation. Markdown rendering and the typing effect
// happen client-side; the server only emits this shell.
func IndexPage(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeStrings(w,
			"<!doctype html>\n<html lang=\"en\">\n<head>\n",
			"<meta charset=\"utf-8\"/>\n",
			"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n",
			"<title>", templ.EscapeString(title), "</title>\n",
			"<link rel=\"preconnect\" href=\"https://fonts.googleapis.com\"/>\n",
			"<link rel=\"stylesheet\" href=\"/assets/app.css\"/>\n",
			"</head>\n<body>\n",
		); err != nil {
			return err
		}
		if err := header(title).Render(ctx, w); err != nil {
			return err
		}
		if err := explainForm().Render(ctx, w); err != nil {
			return err
		}
		return writeStrings(w,
			"<section id=\"explanation\" class=\"explanation\" aria-live=\"polite\"></section>\n",
			"<script src=\"/assets/app.js\"></script>\n",
			"</body>\n</html>\n",
		)
	})
}

// header renders the page masthead.
func header(title string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return writeStrings(w,
			"<header class=\"masthead\"><h1>", templ.EscapeString(title), "</h1>",
			"<p>Paste a code snippet and get a plain-language explanation.</p></header>\n",
		)
	})
}

// explainForm renders the snippet submission form.
func explainForm() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return writeStrings(w,
			"<form id=\"explain-form\" class=\"explain-form\">\n",
			"<label for=\"code\">Code</label>\n",
			"<textarea id=\"code\" name=\"code\" rows=\"16\" spellcheck=\"false\" placeholder=\"Paste your code here\"></textarea>\n",
			"<label for=\"language\">Language</label>\n",
			"<select id=\"language\" name=\"language\">\n",
			languageOptions(),
			"</select>\n",
			"<button type=\"submit\">Explain</button>\n",
			"</form>\n",
		)
	})
}

// supportedLanguages is the selector list offered in the UI. The API
// accepts any language string; this is presentation only.
var supportedLanguages = []string{
	"", "javascript", "typescript", "python", "go", "rust", "java", "c", "cpp", "csharp", "ruby", "php", "sql", "bash",
}

// languageOptions builds the option list, with auto-detect first.
func languageOptions() string {
	options := "<option value=\"\">Auto-detect</option>\n"
	for _, lang := range supportedLanguages {
		if lang == "" {
			continue
		}
		escaped := templ.EscapeString(lang)
		options += "<option value=\"" + escaped + "\">" + escaped + "</option>\n"
	}
	return options
}

// writeStrings writes each piece in order, stopping on the first error.
func writeStrings(w io.Writer, pieces ...string) error {
	for _, piece := range pieces {
		if _, err := io.WriteString(w, piece); err != nil {
			return err
		}
	}
	return nil
}
