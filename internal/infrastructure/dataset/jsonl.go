package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/valyala/bytebufferpool"
)

const maxLineSize = 1 << 20

// ReadRecords decodes one roster row per line. Blank lines are skipped.
func ReadRecords(r io.Reader) ([]roster.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	out := make([]roster.Record, 0, 1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var rec roster.Record
		if err := sonic.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode record line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	return out, nil
}

// WriteRecords encodes records as JSON lines.
func WriteRecords(w io.Writer, records []roster.Record) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, rec := range records {
		encoded, err := sonic.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		_, _ = buf.Write(encoded)
		_ = buf.WriteByte('\n')

		if buf.Len() >= 64*1024 {
			if _, err := buf.WriteTo(w); err != nil {
				return fmt.Errorf("write records: %w", err)
			}
			buf.Reset()
		}
	}
	if buf.Len() > 0 {
		if _, err := buf.WriteTo(w); err != nil {
			return fmt.Errorf("write records: %w", err)
		}
	}

	return nil
}
