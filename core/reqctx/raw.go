package reqctx

import (
	"io"
	"time"

	"github.com/dmitrymomot/reqkit/core/logger"
)

// Blob is the raw body together with its declared content type.
type Blob struct {
	ContentType string
	Data        []byte
}

// Size returns the body length in bytes.
func (b *Blob) Size() int {
	return len(b.Data)
}

// Blob reads the whole body. A non-positive timeout uses Config.RawReadTimeout.
// It returns nil on any failure, including an expired deadline.
func (c *Context) Blob(timeout time.Duration) *Blob {
	data, ok := rawRead(c, timeout, "blob", io.ReadAll)
	if !ok {
		return nil
	}
	return &Blob{ContentType: c.req.Header.Get("Content-Type"), Data: data}
}

// Buffer reads the whole body as bytes. A non-positive timeout uses Config.RawReadTimeout.
// It returns nil on any failure, including an expired deadline.
func (c *Context) Buffer(timeout time.Duration) []byte {
	data, ok := rawRead(c, timeout, "buffer", io.ReadAll)
	if !ok {
		return nil
	}
	return data
}

// FormData parses an application/x-www-form-urlencoded or multipart/form-data body.
// A non-positive timeout uses Config.RawReadTimeout. It returns nil on any failure.
// Temporary files of multipart forms are removed by Close.
func (c *Context) FormData(timeout time.Duration) *FormData {
	contentType := c.req.Header.Get("Content-Type")
	fd, ok := rawRead(c, timeout, "form_data", func(r io.Reader) (*FormData, error) {
		fd, form, err := readForm(contentType, r, c.cfg.MaxFormMemory)
		c.trackForm(form)
		if err != nil {
			return nil, err
		}
		_, _ = io.Copy(io.Discard, r)
		return fd, nil
	})
	if !ok {
		return nil
	}
	return fd
}

// Stream returns the live body stream with no deadline or validation and marks the body
// consumed. Every call returns the same stream.
func (c *Context) Stream() io.ReadCloser {
	src, _ := c.body.take()
	return src
}

// BodyUsed reports whether the body stream has been handed to a reader.
func (c *Context) BodyUsed() bool {
	return c.body.consumed()
}

// rawRead reads the live stream when it is unread, or a replay of it otherwise, within
// timeout. Failures are logged and reported as ok == false, never returned.
func rawRead[T any](c *Context, timeout time.Duration, name string, read func(io.Reader) (T, error)) (T, bool) {
	var zero T
	if timeout <= 0 {
		timeout = c.cfg.RawReadTimeout
	}

	var src io.Reader
	if live, ok := c.body.take(); ok {
		src = live
	} else {
		replay, err := c.body.clone()
		if err != nil {
			c.log.Debug("raw body read skipped", logger.Field(name), logger.Error(err))
			return zero, false
		}
		src = replay
	}

	v, err := readWithin(c.Context(), timeout, src, read)
	if err != nil {
		c.log.Debug("raw body read failed",
			logger.Field(name),
			logger.Timeout(timeout),
			logger.Error(err),
		)
		return zero, false
	}
	return v, true
}
