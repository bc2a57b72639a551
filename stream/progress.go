package stream

import (
	"io"
)

// Observer receives progress callbacks during long-running operations such as
// content extraction or encoding. The callbacks are invoked synchronously on
// the calling goroutine. Units are operation-defined, usually bytes.
//
// Cancellation is not built in. An observer wanting to abort an operation
// must arrange for the operation's stream to fail or be closed out from under
// it.
type Observer interface {
	// Start is called once before the operation begins with a prediction of
	// the total work, or -1 when no prediction is available.
	Start(predicted int64)

	// Progress is called as work proceeds with the running count and the
	// current estimate of the total.
	Progress(current, total int64)

	// Stop is called once when the operation ends with the final total.
	Stop(total int64)
}

// MonitorReader wraps a reader and reports each read to an Observer. Start is
// invoked on construction and Stop when the reader reaches EOF or is closed,
// whichever comes first.
type MonitorReader struct {
	r         io.Reader
	obs       Observer
	current   int64
	predicted int64
	stopped   bool
}

// NewMonitorReader wraps r with progress reporting. The predicted total may
// be -1 when unknown.
func NewMonitorReader(r io.Reader, obs Observer, predicted int64) *MonitorReader {
	obs.Start(predicted)
	return &MonitorReader{r: r, obs: obs, predicted: predicted}
}

// Read implements io.Reader.
func (m *MonitorReader) Read(p []byte) (int, error) {
	n, err := m.r.Read(p)
	if n > 0 {
		m.current += int64(n)
		total := m.predicted
		if m.current > total {
			total = m.current
		}
		m.obs.Progress(m.current, total)
	}
	if err == io.EOF {
		m.stop()
	}
	return n, err
}

// Close reports Stop (once) and closes the underlying reader if it is a
// Closer.
func (m *MonitorReader) Close() error {
	m.stop()
	if c, isCloser := m.r.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}

func (m *MonitorReader) stop() {
	if !m.stopped {
		m.stopped = true
		m.obs.Stop(m.current)
	}
}

// MonitorWriter wraps a writer and reports each write to an Observer.
type MonitorWriter struct {
	w         io.Writer
	obs       Observer
	current   int64
	predicted int64
	stopped   bool
}

// NewMonitorWriter wraps w with progress reporting. The predicted total may
// be -1 when unknown.
func NewMonitorWriter(w io.Writer, obs Observer, predicted int64) *MonitorWriter {
	obs.Start(predicted)
	return &MonitorWriter{w: w, obs: obs, predicted: predicted}
}

// Write implements io.Writer.
func (m *MonitorWriter) Write(p []byte) (int, error) {
	n, err := m.w.Write(p)
	if n > 0 {
		m.current += int64(n)
		total := m.predicted
		if m.current > total {
			total = m.current
		}
		m.obs.Progress(m.current, total)
	}
	return n, err
}

// Close reports Stop (once) and closes the underlying writer if it is a
// Closer.
func (m *MonitorWriter) Close() error {
	if !m.stopped {
		m.stopped = true
		m.obs.Stop(m.current)
	}
	if c, isCloser := m.w.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}
