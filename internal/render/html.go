package render

import (
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fintab/fintab/internal/tables"
)

// fragmentTmpl renders one table as a heading plus a striped, bordered
// table. Cell content is escaped; the model's output is never trusted as
// markup.
var fragmentTmpl = template.Must(template.New("fragment").Parse(`<h3>{{.Heading}}</h3>
<table class="table table-striped table-bordered">
  <thead>
    <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
  </tbody>
</table>
`))

type fragmentData struct {
	Heading string
	Columns []string
	Rows    [][]string
}

// Heading formats a table name for display: underscores become spaces and
// each word is title-cased.
func Heading(name string) string {
	spaced := strings.ReplaceAll(name, "_", " ")
	return cases.Title(language.English).String(spaced)
}

// Fragment renders one reconciled table as an HTML fragment.
func Fragment(t tables.ReconciledTable) (string, error) {
	data := fragmentData{
		Heading: Heading(t.Name),
		Columns: t.Columns,
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Display()
		}
		data.Rows[i] = cells
	}

	var b strings.Builder
	if err := fragmentTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render table %q: %w", t.Name, err)
	}
	return b.String(), nil
}

// Fragments renders every table, preserving order.
func Fragments(tbls []tables.ReconciledTable) ([]string, error) {
	out := make([]string, 0, len(tbls))
	for _, t := range tbls {
		frag, err := Fragment(t)
		if err != nil {
			return nil, err
		}
		out = append(out, frag)
	}
	return out, nil
}
