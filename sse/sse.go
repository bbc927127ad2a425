// Package sse decodes Server-Sent Events from a raw byte stream.
//
// The decoder is purpose-built for consuming long-lived event streams from
// the LnBot API: it assembles complete lines out of arbitrarily-chunked
// network reads, tracks the most recent "event:" label, and emits one frame
// per non-empty "data:" line. It intentionally does not implement the writer
// side of the protocol.
//
// See https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import (
	"bytes"
	"io"
	"strings"
)

const (
	eventPrefix = "event:"
	dataPrefix  = "data:"
)

// Event is a single decoded SSE frame.
type Event struct {
	// Type is the label of the most recent "event:" line, or the empty
	// string when the stream frames events with bare "data:" lines.
	Type string

	// Data is the trimmed payload of the "data:" line, always non-empty.
	Data string
}

// Decoder reads SSE frames from an underlying byte stream.
//
// A Decoder holds a growing line buffer and the pending event-type label, so
// a single frame may span any number of reads and a single read may carry any
// number of frames. It is not safe for concurrent use.
type Decoder struct {
	r       io.Reader
	buf     []byte
	chunk   []byte
	pending string
	err     error
}

// NewDecoder returns a Decoder consuming r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:     r,
		chunk: make([]byte, 4096),
	}
}

// Next returns the next frame from the stream. It blocks on the underlying
// reader until a complete frame is available, the stream ends (io.EOF), or
// the reader fails. A partial line left in the buffer when the stream ends is
// discarded.
func (d *Decoder) Next() (Event, error) {
	for {
		for {
			line, ok := d.nextLine()
			if !ok {
				break
			}
			if ev, ok := d.consume(line); ok {
				return ev, nil
			}
		}

		if d.err != nil {
			return Event{}, d.err
		}

		n, err := d.r.Read(d.chunk)
		if n > 0 {
			// Invalid byte sequences are replaced rather than failing the
			// stream; the payload still has to survive JSON decoding later.
			d.buf = append(d.buf, bytes.ToValidUTF8(d.chunk[:n], []byte("�"))...)
		}
		if err != nil {
			// Drain buffered complete lines before surfacing the error.
			d.err = err
		}
	}
}

// nextLine removes and returns the next newline-terminated line from the
// buffer, without its terminator.
func (d *Decoder) nextLine() (string, bool) {
	i := bytes.IndexByte(d.buf, '\n')
	if i < 0 {
		return "", false
	}
	line := string(d.buf[:i])
	d.buf = d.buf[i+1:]

	return strings.TrimSuffix(line, "\r"), true
}

// consume classifies one line. "event:" lines set the pending label and emit
// nothing. "data:" lines with a non-empty payload emit a frame carrying the
// pending label and clear it. Everything else, including blank lines and ":"
// comments, is ignored.
func (d *Decoder) consume(line string) (Event, bool) {
	switch {
	case strings.HasPrefix(line, eventPrefix):
		d.pending = strings.TrimSpace(line[len(eventPrefix):])
	case strings.HasPrefix(line, dataPrefix):
		data := strings.TrimSpace(line[len(dataPrefix):])
		if data != "" {
			ev := Event{Type: d.pending, Data: data}
			d.pending = ""

			return ev, true
		}
	}

	return Event{}, false
}
