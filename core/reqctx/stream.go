package reqctx

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"
)

// bodyStream owns the single-use request body. It records the bytes read through it
// (up to limit) so a consumed body can be replayed by clone once fully drained.
// The mutex is needed because a read abandoned after a deadline may still be running
// when another reader asks for a clone.
type bodyStream struct {
	src   io.ReadCloser
	limit int64

	mu       sync.Mutex
	used     bool
	eof      bool
	overflow bool
	buf      bytes.Buffer
}

func newBodyStream(src io.ReadCloser, limit int64) *bodyStream {
	if src == nil {
		src = http.NoBody
	}
	return &bodyStream{src: src, limit: limit}
}

// take marks the stream consumed and returns it.
// ok is false when the stream was already consumed.
func (s *bodyStream) take() (io.ReadCloser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.used {
		return s, false
	}
	s.used = true
	return s, true
}

func (s *bodyStream) consumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

// Read implements io.Reader.
func (s *bodyStream) Read(p []byte) (int, error) {
	n, err := s.src.Read(p)

	s.mu.Lock()
	if n > 0 && !s.overflow {
		if int64(s.buf.Len()+n) > s.limit {
			s.overflow = true
			s.buf = bytes.Buffer{}
		} else {
			s.buf.Write(p[:n])
		}
	}
	if errors.Is(err, io.EOF) {
		s.eof = true
	}
	s.mu.Unlock()

	return n, err
}

// Close implements io.Closer.
func (s *bodyStream) Close() error {
	return s.src.Close()
}

// clone returns a fresh reader over the recorded body. It is available only after
// the original was read to EOF without exceeding the record limit.
func (s *bodyStream) clone() (io.Reader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.eof || s.overflow {
		return nil, errCloneUnavailable
	}
	return bytes.NewReader(bytes.Clone(s.buf.Bytes())), nil
}
