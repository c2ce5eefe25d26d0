package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatText writes m as "[section]" blocks of "key = value" lines.
// Sections and keys appear in lexical order.
func (m *Manifest) FormatText(_ context.Context, w io.Writer) error {
	for i, name := range m.SortedSections() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "[%s]\n", name); err != nil {
			return err
		}

		s := Section{entries: m.sections[name], name: name}
		if err := s.FormatText(w); err != nil {
			return err
		}
	}

	return nil
}

// FormatText writes the section as "key = value" lines in lexical key order.
func (s Section) FormatText(w io.Writer) error {
	for k, v := range s.All() {
		if _, err := fmt.Fprintf(w, "%s = %s\n", k, v); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes m as a JSON object of section objects.
func (m *Manifest) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(m.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(m.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes m as a YAML mapping of section mappings.
// A non-positive indent selects flow style.
func (m *Manifest) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, m.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatResult renders a value returned by [Manifest.Evaluate] on one line.
// Strings are printed bare; maps and slices use YAML flow style with keys in
// lexical order.
func FormatResult(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}

	return fmt.Sprint(v)
}
