package export

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"

	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/standings"
)

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; font-size: 12pt; line-height: 1.4; margin: 2rem; }
h1, h2, h3 { color: #1e3c72; border-bottom: 2px solid #2a5298; padding-bottom: 5px; margin-bottom: 1rem; }
table { width: 100%; border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
thead { background-color: #f2f2f2; color: #333; }
tr:nth-child(even) { background-color: #f9f9f9; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if not .Sections}}<p>Nenhuma classificação disponível para gerar o relatório.</p>{{end}}
{{range .Sections}}
<h2>{{.CategoryName}}</h2>
<table>
<thead>
<tr><th>Pos.</th><th>Equipe</th><th>Popeiro</th><th>Melhor Posição</th><th>Último Tempo</th></tr>
</thead>
<tbody>
{{range $i, $s := .Standings}}
<tr><td>{{inc $i}}</td><td>{{$s.TeamName}}</td><td>{{$s.Skipper}}</td><td>{{$s.BestPosition}}</td><td>{{if $s.LatestRaceTime}}{{$s.LatestRaceTime}}{{else}}N/A{{end}}</td></tr>
{{end}}
</tbody>
</table>
{{end}}
</body>
</html>
`))

type reportSection struct {
	CategoryName string
	Standings    []standings.Standing
}

type reportData struct {
	Title    string
	Sections []reportSection
}

// ClassificationReportHTML renders the printable overall classification
// report, one table per category with ranked teams.
func ClassificationReportHTML(doc model.Document) ([]byte, error) {
	byCategory := standings.ByCategory(doc)

	data := reportData{Title: "Relatório de Classificação Geral"}
	for _, category := range doc.Categories {
		ranked, ok := byCategory[category.ID]
		if !ok || len(ranked) == 0 {
			continue
		}
		data.Sections = append(data.Sections, reportSection{
			CategoryName: category.Name,
			Standings:    ranked,
		})
	}

	var b bytes.Buffer
	if err := reportTmpl.Execute(&b, data); err != nil {
		return nil, errors.Wrap(err, "rendering classification report")
	}
	return b.Bytes(), nil
}
