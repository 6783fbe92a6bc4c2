package storageclient

import "io"

// countingReader сообщает, сколько байт тела уже ушло в сторадж.
type countingReader struct {
	inner   io.Reader
	onBytes func(n int64)
}

func newCountingReader(inner io.Reader, onBytes func(n int64)) io.Reader {
	if onBytes == nil {
		return inner
	}

	return &countingReader{
		inner:   inner,
		onBytes: onBytes,
	}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.inner.Read(p)
	if n > 0 {
		c.onBytes(int64(n))
	}
	return n, err
}
