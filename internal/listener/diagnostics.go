package listener

import (
	"io"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-realm/internal/world"
)

const diagnosticsTmpl = `realm diagnostics
generated: {{ .Now | date "2006-01-02 15:04:05 MST" }}
uptime:    {{ .Uptime }}

world
  buildings: {{ .Info.Buildings }}
  monsters:  {{ .Info.Monsters }}
  items:     {{ .Info.Items }}

players ({{ len .Info.Players }})
{{- range .Info.Players }}
  {{ . }}
{{- else }}
  none connected
{{- end }}
`

var diagnosticsTemplate = template.Must(
	template.New("diagnostics").Funcs(sprig.TxtFuncMap()).Parse(diagnosticsTmpl),
)

type diagnosticsData struct {
	Now    time.Time
	Uptime time.Duration
	Info   world.Info
}

func renderDiagnostics(w io.Writer, info world.Info, started time.Time) error {
	return diagnosticsTemplate.Execute(w, diagnosticsData{
		Now:    time.Now(),
		Uptime: time.Since(started).Round(time.Second),
		Info:   info,
	})
}
