package service

import (
	"html/template"
	"io"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/version"
)

// HTMLMetricTable is one frequency table on the metrics tab
type HTMLMetricTable struct {
	Title   string
	Entries []domain.FrequencyEntry
}

// HTMLData represents the data for HTML template
type HTMLData struct {
	Title         string
	GeneratedAt   string
	Version       string
	Score         domain.Score
	PreviousScore domain.Score
	Delta         domain.Score
	TotalMessages int
	Errors        int
	Fatal         int
	MetricTables  []HTMLMetricTable
	Modules       []domain.ModuleGroup
}

var htmlFuncs = template.FuncMap{
	"gradeClass": func(score domain.Score) string {
		if !score.IsDefined() {
			return "grade-none"
		}
		switch v := score.Float(); {
		case v >= 9:
			return "grade-a"
		case v >= 7:
			return "grade-b"
		case v >= 5:
			return "grade-c"
		case v >= 0:
			return "grade-d"
		default:
			return "grade-f"
		}
	},
	"deltaClass": func(delta domain.Score) string {
		if !delta.IsDefined() || delta.Float() == 0 {
			return ""
		}
		if delta.Float() > 0 {
			return "delta-up"
		}
		return "delta-down"
	},
	"signed": func(delta domain.Score) string {
		if !delta.IsDefined() {
			return delta.String()
		}
		return signedFloat(delta.Float())
	},
	"location":  location,
	"orUnknown": displayOrUnknown,
}

var htmlTmpl = template.Must(template.New("report").Funcs(htmlFuncs).Parse(htmlTemplate))

// WriteHTML writes the report as a standalone HTML page
func (f *OutputFormatterImpl) WriteHTML(report domain.ReportView, writer io.Writer) error {
	metrics := report.Metrics()
	data := HTMLData{
		Title:         f.title,
		GeneratedAt:   f.now().Format("2006-01-02 15:04:05"),
		Version:       version.GetVersion(),
		Score:         report.Score(),
		PreviousScore: report.PreviousScore(),
		Delta:         report.Score().Delta(report.PreviousScore()),
		TotalMessages: len(report.Messages()),
		Errors:        metrics.TypeCount(domain.MessageTypeError),
		Fatal:         metrics.TypeCount(domain.MessageTypeFatal),
		MetricTables: []HTMLMetricTable{
			{Title: "By type", Entries: metrics.Types.Entries()},
			{Title: "By module", Entries: metrics.Modules.Entries()},
			{Title: "By symbol", Entries: metrics.Symbols.Entries()},
			{Title: "By path", Entries: metrics.Paths.Entries()},
		},
		Modules: report.Modules(),
	}

	return htmlTmpl.Execute(writer, data)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .header h1 {
            color: #667eea;
            margin-bottom: 10px;
        }
        .header .subtitle {
            color: #666;
            font-size: 14px;
        }
        .score-badge {
            display: inline-block;
            padding: 10px 20px;
            border-radius: 50px;
            font-size: 24px;
            font-weight: bold;
            margin: 10px 0;
        }
        .grade-a { background: #4caf50; color: white; }
        .grade-b { background: #8bc34a; color: white; }
        .grade-c { background: #ff9800; color: white; }
        .grade-d { background: #ff5722; color: white; }
        .grade-f { background: #f44336; color: white; }
        .grade-none { background: #9e9e9e; color: white; }

        .tabs {
            background: white;
            border-radius: 10px;
            overflow: hidden;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .tab-buttons {
            display: flex;
            background: #f5f5f5;
        }
        .tab-button {
            flex: 1;
            padding: 15px;
            border: none;
            background: transparent;
            cursor: pointer;
            font-size: 16px;
            transition: all 0.3s;
        }
        .tab-button.active {
            background: white;
            color: #667eea;
            font-weight: bold;
        }
        .tab-content {
            display: none;
            padding: 30px;
        }
        .tab-content.active {
            display: block;
        }

        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin: 20px 0;
        }
        .metric-card {
            background: #f8f9fa;
            padding: 20px;
            border-radius: 8px;
            text-align: center;
        }
        .metric-value {
            font-size: 32px;
            font-weight: bold;
            color: #667eea;
        }
        .metric-label {
            color: #666;
            margin-top: 5px;
        }

        .table {
            width: 100%;
            border-collapse: collapse;
            margin: 20px 0;
        }
        .table th, .table td {
            padding: 12px;
            text-align: left;
            border-bottom: 1px solid #ddd;
        }
        .table td.line { text-align: right; font-variant-numeric: tabular-nums; width: 70px; }
        .table th {
            background: #f8f9fa;
            font-weight: 600;
        }

        .type-fatal { color: #b71c1c; font-weight: bold; }
        .type-error { color: #f44336; }
        .type-warning { color: #ff9800; }
        .type-refactor { color: #9c27b0; }
        .type-convention { color: #2196f3; }
        .type-info { color: #607d8b; }
        .unknown { color: #999; font-style: italic; }
        .delta-up { color: #4caf50; }
        .delta-down { color: #f44336; }
        .module h3 { margin-top: 30px; color: #2c3e50; }
        .module .module-name { color: #666; font-size: 14px; font-weight: normal; }
        .metrics-columns {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(260px, 1fr));
            gap: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p class="subtitle">Generated: {{.GeneratedAt}} | Version: {{.Version}}</p>
            <div class="score-badge {{gradeClass .Score}}">
                Score: {{.Score}}/10
            </div>
            {{if .PreviousScore.IsDefined}}
            <p class="subtitle">Previous score: {{.PreviousScore}}/10
                {{if .Delta.IsDefined}}(<span class="{{deltaClass .Delta}}">{{signed .Delta}}</span>){{end}}
            </p>
            {{end}}
        </div>

        <div class="tabs">
            <div class="tab-buttons">
                <button class="tab-button active" onclick="showTab('summary', this)">Summary</button>
                <button class="tab-button" onclick="showTab('metrics', this)">Metrics</button>
                <button class="tab-button" onclick="showTab('modules', this)">Messages</button>
            </div>

            <div id="summary" class="tab-content active">
                <h2>Summary</h2>
                <div class="metric-grid">
                    <div class="metric-card">
                        <div class="metric-value">{{.TotalMessages}}</div>
                        <div class="metric-label">Messages</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{len .Modules}}</div>
                        <div class="metric-label">Modules</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{.Errors}}</div>
                        <div class="metric-label">Errors</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{.Fatal}}</div>
                        <div class="metric-label">Fatal</div>
                    </div>
                </div>
            </div>

            <div id="metrics" class="tab-content">
                <h2>Metrics</h2>
                <div class="metrics-columns">
                {{range .MetricTables}}
                    <table class="table">
                        <thead>
                            <tr><th>{{.Title}}</th><th>Count</th></tr>
                        </thead>
                        <tbody>
                            {{range .Entries}}
                            <tr>
                                <td{{if not .Key.IsKnown}} class="unknown"{{end}}>{{.Key.Label}}</td>
                                <td>{{.Count}}</td>
                            </tr>
                            {{end}}
                        </tbody>
                    </table>
                {{end}}
                </div>
            </div>

            <div id="modules" class="tab-content">
                <h2>Messages</h2>
                {{range .Modules}}
                <div class="module">
                    <h3>{{orUnknown .Key.Path}} <span class="module-name">{{orUnknown .Key.Name}}</span></h3>
                    <table class="table">
                        <thead>
                            <tr>
                                <th>Line</th>
                                <th>Type</th>
                                <th>Symbol</th>
                                <th>Object</th>
                                <th>Message</th>
                            </tr>
                        </thead>
                        <tbody>
                            {{range .Messages}}
                            <tr>
                                <td class="line">{{location .}}</td>
                                <td class="type-{{.Type}}">{{.Type}}</td>
                                <td title="{{.MessageID}}">{{.Symbol}}</td>
                                <td>{{.Obj}}</td>
                                <td>{{.Message}}</td>
                            </tr>
                            {{end}}
                        </tbody>
                    </table>
                </div>
                {{else}}
                <p style="color: #4caf50; font-weight: bold; margin-top: 20px;">✓ No messages</p>
                {{end}}
            </div>
        </div>
    </div>

    <script>
        function showTab(tabName, el) {
            const tabs = document.querySelectorAll('.tab-content');
            tabs.forEach(tab => tab.classList.remove('active'));

            const buttons = document.querySelectorAll('.tab-button');
            buttons.forEach(btn => btn.classList.remove('active'));

            document.getElementById(tabName).classList.add('active');
            if (el) { el.classList.add('active'); }
        }
    </script>
</body>
</html>`
