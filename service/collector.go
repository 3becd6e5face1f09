package service

import (
	"io"
	"sync"

	"github.com/ludo-technologies/lintreport/domain"
)

// HostMessage is a diagnostic as a linter host hands it to a reporter
type HostMessage struct {
	Category string
	Module   string
	Obj      string
	Line     *int
	Column   *int
	Path     string
	Symbol   string
	Msg      string
	MsgID    string
}

// ExtendedCollector gathers host messages and writes them, with the run
// statistics, as one extended record when the run closes
type ExtendedCollector struct {
	mu       sync.Mutex
	messages []domain.Message
	writer   domain.RecordWriter
}

// NewExtendedCollector creates a collector writing JSON records
func NewExtendedCollector() *ExtendedCollector {
	return &ExtendedCollector{
		messages: []domain.Message{},
		writer:   NewRecordWriter(),
	}
}

// HandleMessage stores a message for the final record
func (c *ExtendedCollector) HandleMessage(msg HostMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, domain.Message{
		Type:      msg.Category,
		Module:    msg.Module,
		Obj:       msg.Obj,
		Line:      msg.Line,
		Column:    msg.Column,
		Path:      msg.Path,
		Symbol:    msg.Symbol,
		Message:   msg.Msg,
		MessageID: msg.MsgID,
	})
}

// DisplayMessages does nothing; the record is written on Close
func (c *ExtendedCollector) DisplayMessages() {}

// DisplayReports does nothing; the record is written on Close
func (c *ExtendedCollector) DisplayReports() {}

// Messages returns a copy of the collected messages in arrival order
func (c *ExtendedCollector) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Record returns the extended record the collector would write
func (c *ExtendedCollector) Record(stats, previous domain.RunStats) *domain.ExtendedReport {
	return &domain.ExtendedReport{
		Messages: c.Messages(),
		Stats:    stats,
		Previous: previous,
	}
}

// Close writes {messages, stats, previous} as indented JSON to w
func (c *ExtendedCollector) Close(w io.Writer, stats, previous domain.RunStats) error {
	return c.writer.WriteRecord(c.Record(stats, previous), "", w)
}
