package sse

import (
	"bufio"
	"io"
	"strings"
)

// Event is one parsed frame of an SSE stream.
type Event struct {
	Name string
	Data string
}

// Reader incrementally parses an SSE stream into events. Partial lines
// across read boundaries are a buffering concern handled here, not by the
// caller.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next complete event, or io.EOF when the stream ends. An
// unterminated trailing event with data is still delivered before EOF.
func (p *Reader) Next() (Event, error) {
	var ev Event
	var data []string

	flush := func() Event {
		ev.Data = strings.Join(data, "\n")
		return ev
	}

	for {
		line, err := p.r.ReadString('\n')
		if err != nil {
			if err == io.EOF && (len(data) > 0 || ev.Name != "") {
				if line = strings.TrimRight(line, "\r\n"); line != "" {
					if field, value, ok := parseField(line); ok && field == "data" {
						data = append(data, value)
					}
				}
				return flush(), nil
			}
			return Event{}, err
		}

		line = strings.TrimRight(line, "\r\n")

		// Blank line terminates the pending event.
		if line == "" {
			if len(data) > 0 || ev.Name != "" {
				return flush(), nil
			}
			continue
		}

		// Comment lines keep the connection alive; skip them.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, ok := parseField(line)
		if !ok {
			continue
		}
		switch field {
		case "event":
			ev.Name = value
		case "data":
			data = append(data, value)
		}
	}
}

func parseField(line string) (field, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	field = line[:idx]
	value = strings.TrimPrefix(line[idx+1:], " ")
	return field, value, true
}
