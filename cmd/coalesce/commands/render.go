package commands

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of YAML output.
const yamlIndent = 2

// newTable returns a light-styled table rendering to w.
func newTable(w io.Writer, title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)

	return tbl
}

// writeYAML encodes v as a YAML document on w.
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	err := enc.Encode(v)
	if err != nil {
		return err
	}

	return enc.Close()
}
