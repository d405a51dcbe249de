package events

import (
	"bufio"
	"io"

	"go.uber.org/zap"
)

const maxLineSize = 1024 * 1024

// Reader decodes events from a line stream, skipping malformed lines.
type Reader struct {
	scanner *bufio.Scanner
	logger  *zap.Logger
	line    int
}

// NewReader wraps r. A nil logger discards warnings.
func NewReader(r io.Reader, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner, logger: logger}
}

// Next returns the next well-formed event. It returns io.EOF once the
// stream is exhausted.
func (r *Reader) Next() (Event, error) {
	for r.scanner.Scan() {
		r.line++
		ev, ok, err := ParseLine(r.scanner.Text())
		if err != nil {
			r.logger.Warn("skipping malformed event", zap.Int("line", r.line), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		return ev, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}
