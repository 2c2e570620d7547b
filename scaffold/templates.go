package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{"ident": ident}).ParseFS(templateFS, "templates/*.tmpl"),
)

// data is what every template renders against.
type data struct {
	Options
	Domain  string
	Command string
}

// render executes the named template. Leading whitespace is trimmed.
func render(name string, d data) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, d); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return bytes.TrimLeftFunc(buf.Bytes(), unicode.IsSpace), nil
}

// ident turns a command name into the Go function name of its builder.
// Runes that cannot appear in an identifier, such as combining marks, are
// spelled out as _<hex>_ so distinct names keep distinct identifiers.
func ident(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })

	var b strings.Builder
	for i, p := range parts {
		for j, r := range []rune(p) {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				fmt.Fprintf(&b, "_%x_", r)
				continue
			}
			if i > 0 && j == 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "" || !unicode.IsLetter([]rune(out)[0]) {
		out = "cmd" + out
	}
	return out + "Command"
}

// commandFile is the source file name of a command.
func commandFile(name string) string {
	// Hyphens keep names like "set_linux" or "run_test" from acting as build suffixes.
	return strings.ReplaceAll(name, "_", "-") + ".go"
}
