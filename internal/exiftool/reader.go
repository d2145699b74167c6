package exiftool

import (
	"bytes"
	"fmt"
	"io"
)

// Sentinel is printed by exiftool after each -execute in stay-open mode.
const Sentinel = "{ready}\n"

const readChunk = 4096

// responseReader splits a stay-open output stream into responses. Bytes
// are accumulated until Sentinel appears; anything read past it is kept
// for the next response.
type responseReader struct {
	r   io.Reader
	buf []byte
}

func newResponseReader(r io.Reader) *responseReader {
	return &responseReader{r: r}
}

// next blocks until a full response is available and returns it without
// the sentinel.
func (rr *responseReader) next() ([]byte, error) {
	sentinel := []byte(Sentinel)
	scanned := 0
	chunk := make([]byte, readChunk)

	for {
		// Resume just before the previous end so a sentinel split across
		// two reads is still found.
		from := max(scanned-len(sentinel)+1, 0)
		if i := bytes.Index(rr.buf[from:], sentinel); i >= 0 {
			end := from + i
			resp := bytes.Clone(rr.buf[:end])
			rr.buf = rr.buf[end+len(sentinel):]
			return resp, nil
		}
		scanned = len(rr.buf)

		n, err := rr.r.Read(chunk)
		rr.buf = append(rr.buf, chunk[:n]...)
		if err != nil {
			if n > 0 && err == io.EOF {
				continue
			}
			if err == io.EOF {
				return nil, fmt.Errorf("exiftool output ended before %q: %w", Sentinel, io.ErrUnexpectedEOF)
			}
			return nil, fmt.Errorf("read exiftool output: %w", err)
		}
	}
}
