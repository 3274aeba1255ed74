package display

import "html/template"

var incFunc = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

var pageTmpl = template.Must(template.New("page").Funcs(incFunc).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="5">
<title>{{if .View.ChampionshipTitle}}{{.View.ChampionshipTitle}}{{else}}Sistema de Regatas{{end}}</title>
<style>
body { font-family: 'Roboto', sans-serif; margin: 0; color: #fff; background: linear-gradient(135deg, #1e3c72, #2a5298); min-height: 100vh; }
{{if .TV}}body { font-size: 1.6rem; }{{end}}
main { max-width: 960px; margin: 0 auto; padding: 2rem; }
h1 { border-bottom: 2px solid rgba(255,255,255,.3); padding-bottom: .5rem; }
h2 { margin-top: 2rem; }
table { width: 100%; border-collapse: collapse; background: rgba(255,255,255,.08); border-radius: 8px; }
th, td { padding: .6rem .8rem; text-align: left; border-bottom: 1px solid rgba(255,255,255,.15); }
.live { background: #dc2626; border-radius: 999px; padding: .1rem .8rem; font-size: .8em; }
.muted { opacity: .7; }
</style>
</head>
<body>
<main>
<h1>{{if .View.ChampionshipTitle}}{{.View.ChampionshipTitle}}{{else}}Sistema de Regatas{{end}}</h1>
<p class="muted">{{.View.Location}}{{if .View.Dates}} — {{.View.Dates}}{{end}}</p>
{{with .View.ActiveRace}}
<p><span class="live">AO VIVO</span> {{.Name}} ({{.CategoryName}})</p>
{{end}}
{{range .View.Categories}}
<h2>{{.CategoryName}}</h2>
<table>
<thead><tr><th>Pos.</th><th>Equipe</th><th>Popeiro</th><th>Melhor Posição</th><th>Último Tempo</th></tr></thead>
<tbody>
{{range $i, $s := .Standings}}
<tr><td>{{inc $i}}</td><td>{{$s.TeamName}}</td><td>{{$s.Skipper}}</td><td>{{$s.BestPosition}}</td><td>{{if $s.LatestRaceTime}}{{$s.LatestRaceTime}}{{else}}-{{end}}</td></tr>
{{end}}
</tbody>
</table>
{{else}}
<p>Nenhuma classificação disponível.</p>
{{end}}
</main>
</body>
</html>
`))

var overlayTmpl = template.Must(template.New("overlay").Funcs(incFunc).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="2">
<title>Overlay</title>
<style>
body { font-family: 'Roboto', sans-serif; margin: 0; background: transparent; color: #fff; }
.card { max-width: 560px; margin: 2rem; background: linear-gradient(135deg, rgba(30,60,114,.95), rgba(42,82,152,.95)); border: 2px solid rgba(255,255,255,.2); border-radius: 16px; padding: 1rem; }
header { text-align: center; border-bottom: 2px solid rgba(255,255,255,.3); padding-bottom: .6rem; margin-bottom: .6rem; }
.live { background: #dc2626; border-radius: 999px; padding: .1rem .8rem; font-size: .75rem; }
.row { display: grid; grid-template-columns: 44px 1fr auto; gap: .6rem; align-items: center; background: rgba(255,255,255,.1); border-radius: 8px; padding: .5rem; margin-bottom: .4rem; }
.pos { width: 36px; height: 36px; display: flex; align-items: center; justify-content: center; border-radius: 50%; background: #3b82f6; font-weight: bold; }
.time { font-family: monospace; font-size: 1.3rem; text-align: right; }
.muted { opacity: .7; font-size: .8rem; }
</style>
</head>
<body>
{{if not .View.OverlayEnabled}}
<p style="padding: 2rem; font-weight: bold;">Overlay desativado.</p>
{{else if not .View.OverlayRace}}
<p style="padding: 2rem; font-weight: bold;">Nenhuma corrida ativa ou finalizada para exibir.</p>
{{else}}
<div class="card">
<header>
<h1>{{.View.OverlayRace.Name}}</h1>
<p><span class="live">AO VIVO</span> {{.View.OverlayRace.CategoryName}}</p>
</header>
{{range $i, $s := .View.OverlayStandings}}
<div class="row">
<div class="pos">{{inc $i}}</div>
<div><strong>{{$s.TeamName}}</strong><br><span class="muted">{{$s.Skipper}}</span></div>
<div class="time">{{if $s.LatestRaceTime}}{{$s.LatestRaceTime}}{{else}}-{{end}}</div>
</div>
{{end}}
</div>
{{end}}
</body>
</html>
`))
