package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/constants"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// StdinPath is the input path that reads standard input
const StdinPath = "-"

// codec is the serialization used for a record file
type codec int

const (
	codecJSON codec = iota
	codecYAML
	codecMsgpack
)

// codecFor picks the codec from a file extension; unknown extensions are JSON
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtYAML, constants.ExtYML:
		return codecYAML
	case constants.ExtMsgpack, constants.ExtMsgpk:
		return codecMsgpack
	default:
		return codecJSON
	}
}

// InputReaderImpl decodes linter output files
type InputReaderImpl struct {
	stdin io.Reader
}

// NewInputReader creates an input reader bound to os.Stdin
func NewInputReader() *InputReaderImpl {
	return &InputReaderImpl{stdin: os.Stdin}
}

// NewInputReaderWithStdin creates an input reader reading "-" from r
func NewInputReaderWithStdin(r io.Reader) *InputReaderImpl {
	return &InputReaderImpl{stdin: r}
}

// ReadFile opens and decodes path; "-" or "" reads stdin as JSON
func (r *InputReaderImpl) ReadFile(path string, format domain.InputFormat) (*domain.ExtendedReport, error) {
	if path == "" || path == StdinPath {
		return r.Read(r.stdin, StdinPath, format)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError("cannot open "+path, err)
	}
	defer file.Close()

	return r.Read(file, path, format)
}

// Read decodes the input in the given shape. The codec follows the
// extension of source; simple input yields a record without stats.
func (r *InputReaderImpl) Read(in io.Reader, source string, format domain.InputFormat) (*domain.ExtendedReport, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot read "+source, err)
	}

	c := codecFor(source)
	if c != codecMsgpack && len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.NewParseError(source, errors.New("input is empty"))
	}

	switch format {
	case domain.InputFormatSimple, "":
		var messages []domain.Message
		if err := decode(c, data, &messages); err != nil {
			return nil, domain.NewParseError(source, err)
		}
		if messages == nil {
			messages = []domain.Message{}
		}
		return &domain.ExtendedReport{Messages: messages}, nil

	case domain.InputFormatExtended:
		var record domain.ExtendedReport
		if err := decode(c, data, &record); err != nil {
			return nil, domain.NewParseError(source, err)
		}
		if record.Messages == nil {
			record.Messages = []domain.Message{}
		}
		return &record, nil

	default:
		return nil, domain.NewUnsupportedFormatError(string(format))
	}
}

// ReadStats decodes a statistics mapping from path; "-" reads stdin.
// A null document yields nil stats.
func (r *InputReaderImpl) ReadStats(path string) (domain.RunStats, error) {
	var in io.Reader = r.stdin
	if path != StdinPath {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, domain.NewFileNotFoundError(path, err)
			}
			return nil, domain.NewInvalidInputError("cannot open "+path, err)
		}
		defer file.Close()
		in = file
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot read "+path, err)
	}

	var stats domain.RunStats
	if err := decode(codecFor(path), data, &stats); err != nil {
		return nil, domain.NewParseError(path, err)
	}
	return stats, nil
}

func decode(c codec, data []byte, v interface{}) error {
	switch c {
	case codecYAML:
		return yaml.Unmarshal(data, v)
	case codecMsgpack:
		return msgpack.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}
