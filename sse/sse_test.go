package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, r io.Reader) []Event {
	t.Helper()

	dec := NewDecoder(r)
	var events []Event
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestDecoder_EventDataFrame(t *testing.T) {
	events := collect(t, strings.NewReader("event: settled\ndata: {\"number\":1}\n\n"))

	require.Len(t, events, 1)
	assert.Equal(t, "settled", events[0].Type)
	assert.Equal(t, `{"number":1}`, events[0].Data)
}

func TestDecoder_DataOnlyFrames(t *testing.T) {
	events := collect(t, strings.NewReader("data: one\ndata: two\n"))

	require.Len(t, events, 2)
	assert.Equal(t, Event{Data: "one"}, events[0])
	assert.Equal(t, Event{Data: "two"}, events[1])
}

func TestDecoder_LabelConsumedByData(t *testing.T) {
	events := collect(t, strings.NewReader("event: settled\ndata: a\n\ndata: b\n"))

	require.Len(t, events, 2)
	assert.Equal(t, "settled", events[0].Type)
	// The label was cleared by the first data line.
	assert.Equal(t, "", events[1].Type)
}

func TestDecoder_IgnoresCommentsAndBlankLines(t *testing.T) {
	body := ": keepalive\n\nevent: settled\ndata: x\n\n: another\n"
	events := collect(t, strings.NewReader(body))

	require.Len(t, events, 1)
	assert.Equal(t, Event{Type: "settled", Data: "x"}, events[0])
}

func TestDecoder_BareEventLineEmitsNothing(t *testing.T) {
	events := collect(t, strings.NewReader("event: settled\n\nevent: expired\n"))

	assert.Empty(t, events)
}

func TestDecoder_EmptyDataLineEmitsNothing(t *testing.T) {
	events := collect(t, strings.NewReader("data:\ndata:   \n"))

	assert.Empty(t, events)
}

func TestDecoder_EmptyStream(t *testing.T) {
	events := collect(t, strings.NewReader(""))

	assert.Empty(t, events)
}

func TestDecoder_PartialTrailingLineDiscarded(t *testing.T) {
	events := collect(t, strings.NewReader("data: complete\ndata: partial"))

	require.Len(t, events, 1)
	assert.Equal(t, "complete", events[0].Data)
}

func TestDecoder_CRLFLines(t *testing.T) {
	events := collect(t, strings.NewReader("event: settled\r\ndata: x\r\n\r\n"))

	require.Len(t, events, 1)
	assert.Equal(t, Event{Type: "settled", Data: "x"}, events[0])
}

// Chunk boundaries must not affect the decoded sequence, even when a read
// splits a line in the middle of a prefix or payload.
func TestDecoder_RechunkingInvariance(t *testing.T) {
	body := "event: pending\ndata: {\"number\":1}\n\n: keepalive\nevent: settled\ndata: {\"number\":1,\"ok\":true}\n\n"
	whole := collect(t, strings.NewReader(body))

	tests := []struct {
		name string
		r    io.Reader
	}{
		{name: "one byte at a time", r: iotest.OneByteReader(strings.NewReader(body))},
		{name: "half reads", r: iotest.HalfReader(strings.NewReader(body))},
		{name: "data err reader", r: iotest.DataErrReader(strings.NewReader(body))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, whole, collect(t, tt.r))
		})
	}
}

func TestDecoder_InvalidUTF8Replaced(t *testing.T) {
	events := collect(t, strings.NewReader("data: a\xffb\n"))

	require.Len(t, events, 1)
	assert.Equal(t, "a�b", events[0].Data)
}

func TestDecoder_ReadErrorSurfacesAfterBufferedLines(t *testing.T) {
	readErr := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader("data: last\n"), iotest.ErrReader(readErr))

	dec := NewDecoder(r)
	ev, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "last", ev.Data)

	_, err = dec.Next()
	assert.ErrorIs(t, err, readErr)
}
