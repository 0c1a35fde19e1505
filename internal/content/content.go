// Package content resolves the popup body shown for a clicked object.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml/v2"
)

// DefaultBody is used for any object without its own entry.
const DefaultBody = "Details about {{.Name}} go here."

// file is the on-disk layout:
//
//	default = "Details about {{.Name}} go here."
//
//	[bodies]
//	Propeller = "Built the flight controller for {{.Name}}."
type file struct {
	Default string            `toml:"default"`
	Bodies  map[string]string `toml:"bodies"`
}

// Table maps object names to body templates. A nil *Table resolves
// everything to the default body.
type Table struct {
	fallback *template.Template
	bodies   map[string]*template.Template
	folded   map[string]*template.Template
}

type bodyData struct {
	Name string
}

var defaultTemplate = template.Must(template.New("default").Option("missingkey=zero").Parse(DefaultBody))

func Default() *Table {
	return &Table{
		fallback: defaultTemplate,
		bodies:   map[string]*template.Template{},
		folded:   map[string]*template.Template{},
	}
}

// Parse reads a table from TOML. Every template is checked up front so a
// bad entry is reported at load time, not when it is clicked.
func Parse(data []byte) (*Table, error) {
	var f file
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	t := Default()
	if f.Default != "" {
		tmpl, err := parseBody("default", f.Default)
		if err != nil {
			return nil, err
		}
		t.fallback = tmpl
	}
	for name, body := range f.Bodies {
		tmpl, err := parseBody(name, body)
		if err != nil {
			return nil, err
		}
		t.bodies[name] = tmpl
		t.folded[strings.ToLower(name)] = tmpl
	}
	return t, nil
}

func parseBody(name, body string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", name, err)
	}
	return tmpl, nil
}

// Load reads a table from path. A missing file yields the default table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return t, nil
}

// Body renders the text for name: an exact entry, then a case-insensitive
// one, then the default template.
func (t *Table) Body(name string) string {
	if t == nil {
		t = Default()
	}
	tmpl, ok := t.bodies[name]
	if !ok {
		tmpl, ok = t.folded[strings.ToLower(name)]
	}
	if !ok {
		tmpl = t.fallback
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, bodyData{Name: name}); err != nil {
		b.Reset()
		_ = defaultTemplate.Execute(&b, bodyData{Name: name})
	}
	return b.String()
}

// Len is the number of explicit entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bodies)
}
