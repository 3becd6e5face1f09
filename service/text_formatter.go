package service

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/ludo-technologies/lintreport/domain"
	"github.com/mattn/go-runewidth"
)

// textPalette holds the colors of one text rendering
type textPalette struct {
	heading *color.Color
	good    *color.Color
	bad     *color.Color
	muted   *color.Color
	types   map[string]*color.Color
}

func newTextPalette(enabled bool) *textPalette {
	p := &textPalette{
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
		muted:   color.New(color.Faint),
		types: map[string]*color.Color{
			domain.MessageTypeFatal:      color.New(color.FgRed, color.Bold),
			domain.MessageTypeError:      color.New(color.FgRed),
			domain.MessageTypeWarning:    color.New(color.FgYellow),
			domain.MessageTypeRefactor:   color.New(color.FgMagenta),
			domain.MessageTypeConvention: color.New(color.FgBlue),
			domain.MessageTypeInfo:       color.New(color.FgWhite),
		},
	}
	all := []*color.Color{p.heading, p.good, p.bad, p.muted}
	for _, c := range p.types {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WriteText writes the report as aligned plain text
func (f *OutputFormatterImpl) WriteText(report domain.ReportView, writer io.Writer) error {
	p := newTextPalette(f.color)
	w := &errWriter{w: writer}

	w.printf("\n%s\n\n", p.heading.Sprintf("=== %s ===", f.title))
	w.printf("Score: %s\n", f.scoreLine(report, p))

	modules := report.Modules()
	w.printf("Messages: %d in %d modules\n", len(report.Messages()), len(modules))

	metrics := report.Metrics()
	f.writeTable(w, p, "Messages by type", metrics.Types)
	f.writeTable(w, p, "Messages by module", metrics.Modules)
	f.writeTable(w, p, "Messages by symbol", metrics.Symbols)
	f.writeTable(w, p, "Messages by path", metrics.Paths)

	if len(modules) == 0 {
		w.printf("\n%s\n", p.good.Sprint("No messages."))
		return w.err
	}

	for _, group := range modules {
		w.printf("\n%s %s\n", p.heading.Sprint(displayOrUnknown(group.Key.Path)),
			p.muted.Sprintf("(%s)", displayOrUnknown(group.Key.Name)))

		locWidth, typeWidth, symbolWidth := 0, 0, 0
		for _, msg := range group.Messages {
			locWidth = max(locWidth, runewidth.StringWidth(location(msg)))
			typeWidth = max(typeWidth, runewidth.StringWidth(msg.Type))
			symbolWidth = max(symbolWidth, runewidth.StringWidth(msg.Symbol))
		}
		for _, msg := range group.Messages {
			typeCell := runewidth.FillRight(msg.Type, typeWidth)
			if c, ok := p.types[msg.Type]; ok {
				typeCell = c.Sprint(typeCell)
			}
			w.printf("  %s  %s  %s  %s\n",
				runewidth.FillLeft(location(msg), locWidth),
				typeCell,
				runewidth.FillRight(msg.Symbol, symbolWidth),
				msg.Message)
		}
	}

	return w.err
}

func (f *OutputFormatterImpl) scoreLine(report domain.ReportView, p *textPalette) string {
	score := report.Score()
	line := score.String()
	if score.IsDefined() {
		if score.Float() >= domain.MaxScore {
			line = p.good.Sprint(line)
		} else if score.Float() < 5 {
			line = p.bad.Sprint(line)
		}
	}

	previous := report.PreviousScore()
	if !previous.IsDefined() {
		return line
	}
	delta := score.Delta(previous)
	if !delta.IsDefined() {
		return fmt.Sprintf("%s (previous: %s)", line, previous)
	}
	change := signedFloat(delta.Float())
	switch {
	case delta.Float() > 0:
		change = p.good.Sprint(change)
	case delta.Float() < 0:
		change = p.bad.Sprint(change)
	}
	return fmt.Sprintf("%s (previous: %s, %s)", line, previous, change)
}

func (f *OutputFormatterImpl) writeTable(w *errWriter, p *textPalette, heading string, table *domain.FrequencyTable) {
	entries := table.Entries()
	if len(entries) == 0 {
		return
	}

	w.printf("\n%s\n", p.heading.Sprint(heading))
	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.Key.Label()))
	}
	for _, e := range entries {
		w.printf("  %s  %5d\n", runewidth.FillRight(e.Key.Label(), width), e.Count)
	}
}

// location formats "line:column" of a message
func location(msg domain.Message) string {
	if !msg.HasLine() {
		return "-"
	}
	loc := strconv.Itoa(msg.LineNumber())
	if msg.Column != nil {
		loc += ":" + strconv.Itoa(*msg.Column)
	}
	return loc
}

func signedFloat(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

func displayOrUnknown(value string) string {
	if value == "" {
		return domain.UnknownLabel
	}
	return value
}

// errWriter keeps the first write error
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
