package service

import (
	"encoding/json"
	"io"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// RecordWriterImpl encodes extended records
type RecordWriterImpl struct{}

// NewRecordWriter creates a new record writer
func NewRecordWriter() *RecordWriterImpl {
	return &RecordWriterImpl{}
}

// WriteRecord encodes record to writer. The codec follows the extension
// of path; an empty path writes JSON. Sets inside the statistics are
// written as sorted lists.
func (w *RecordWriterImpl) WriteRecord(record *domain.ExtendedReport, path string, writer io.Writer) error {
	if record == nil {
		record = &domain.ExtendedReport{}
	}
	normalized := record.Normalized()

	var err error
	switch codecFor(path) {
	case codecYAML:
		err = WriteYAML(writer, normalized)
	case codecMsgpack:
		enc := msgpack.NewEncoder(writer)
		enc.SetSortMapKeys(true)
		err = enc.Encode(normalized)
	default:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "    ")
		err = enc.Encode(normalized)
	}
	if err != nil {
		return domain.NewOutputError("failed to encode record", err)
	}
	return nil
}
