package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"phase": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>LED Intensity Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.mode { font-weight: bold; }
.on { color: green; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
.bar { background: #eee; width: 100%; height: 14px; }
.bar > div { background: green; height: 14px; }
</style>
</head>
<body>
<h1>LED Intensity Controller</h1>

<table>
<tr><th>Mode</th><td class="mode">{{.Mode}}</td></tr>
<tr><th>Duty</th><td>
  <div class="bar"><div style="width: {{.DutyPercent}}%"></div></div>
  {{.DutyPercent}}% ({{.PWM.CurrentDuty}}/{{.PWM.Period}})
</td></tr>
<tr><th>Base duty</th><td>{{.PWM.BaseDuty}}</td></tr>
<tr><th>Blink</th><td>{{if .PWM.BlinkEnabled}}<span class="on">enabled</span>, phase {{phase .PWM.BlinkPhase}} (duty {{.PWM.BlinkDuty}}){{else}}<span class="off">disabled</span>{{end}}</td></tr>
<tr><th>Analog reading</th><td>{{.PWM.LastAnalog}} / 1023</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Iterations</th><td>{{.Iterations}}</td></tr>
</table>

<table>
<tr><th>Button 0 presses</th><td>{{index .Presses 0}}</td></tr>
<tr><th>Button 1 presses</th><td>{{index .Presses 1}}</td></tr>
<tr><th>Button 2 presses</th><td>{{index .Presses 2}}</td></tr>
<tr><th>Telemetry records</th><td>{{.Telemetry}}</td></tr>
</table>

<table>
{{if .Config.Broker}}<tr><th>MQTT</th><td>{{if .MQTTConnected}}<span class="connected">connected</span>{{else}}<span class="disconnected">disconnected</span>{{end}} ({{.Config.Broker}})</td></tr>{{end}}
{{if .Config.SerialDev}}<tr><th>Serial</th><td>{{.Config.SerialDev}}</td></tr>{{end}}
<tr><th>PWM frame</th><td>{{.Config.Period}} ticks @ {{.Config.FastTickUs}}&micro;s</td></tr>
<tr><th>Blink period</th><td>{{.Config.SlowTickMs}}ms</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>`

// renderHTML writes the status page for the given snapshot.
func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}
