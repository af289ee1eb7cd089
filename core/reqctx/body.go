package reqctx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/dmitrymomot/reqkit/core/logger"
	"github.com/dmitrymomot/reqkit/pkg/async"
)

const (
	strategyText = "text"
	strategyForm = "form"
	strategyJSON = "json"
)

var errEmptyBody = errors.New("reqctx: empty body")

// Body reads, decodes and validates the request body. It is not cached: the body stream
// is single-use, so Body is meant to be called at most once. A second call fails with
// ErrBodyConsumed.
//
// Without a body schema it returns (nil, nil) and reads nothing. The decode strategy is:
//   - text, when Schemas.BodyShape is ShapeString
//   - flat form mapping, when Schemas.Transform is set and the media type is multipart/form-data
//   - JSON otherwise
//
// The read is bounded by Config.BodyTimeout; expiry fails with ErrBodyTimeout and the
// pending read is abandoned. Read or decode failures fail with ErrMalformedBody and schema
// rejections with ErrInvalidBody.
func (c *Context) Body() (any, error) {
	if c.schemas.Body == nil {
		return nil, nil
	}

	src, ok := c.body.take()
	if !ok {
		return nil, ErrBodyConsumed
	}

	strategy := c.bodyStrategy()
	contentType := c.req.Header.Get("Content-Type")

	raw, err := readWithin(c.Context(), c.cfg.BodyTimeout, src, func(r io.Reader) (any, error) {
		return c.decodeBody(strategy, contentType, r)
	})
	if err != nil {
		if errors.Is(err, async.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			c.log.Debug("request body read timed out",
				logger.Field("body"),
				logger.Strategy(strategy),
				logger.Timeout(c.cfg.BodyTimeout),
			)
			return nil, ErrBodyTimeout.WithError(err)
		}
		return nil, ErrMalformedBody.WithError(err)
	}

	v, err := c.schemas.Body.Parse(raw)
	if err != nil {
		return nil, ErrInvalidBody.WithError(err)
	}
	return v, nil
}

func (c *Context) bodyStrategy() string {
	switch {
	case c.schemas.BodyShape == ShapeString:
		return strategyText
	case c.schemas.Transform && isMultipartForm(c.req.Header.Get("Content-Type")):
		return strategyForm
	default:
		return strategyJSON
	}
}

func (c *Context) decodeBody(strategy, contentType string, r io.Reader) (any, error) {
	var (
		v   any
		err error
	)

	switch strategy {
	case strategyText:
		var data []byte
		data, err = io.ReadAll(r)
		v = strings.ToValidUTF8(string(data), "\uFFFD")

	case strategyForm:
		var (
			fd   *FormData
			form *multipart.Form
		)
		fd, form, err = readForm(contentType, r, c.cfg.MaxFormMemory)
		c.trackForm(form)
		if err == nil {
			v = fd.flatten()
		}

	default:
		v, err = decodeJSON(r)
	}
	if err != nil {
		return nil, err
	}

	// Drain what the decoder left so a consumed body stays replayable
	_, _ = io.Copy(io.Discard, r)

	return v, nil
}

func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyBody
		}
		return nil, err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("reqctx: unexpected data after JSON value")
	}

	return v, nil
}

// readWithin runs read on src in the background and waits at most timeout for it.
// On expiry the read is abandoned, not aborted. Panics in read become errors.
func readWithin[T any](ctx context.Context, timeout time.Duration, src io.Reader, read func(io.Reader) (T, error)) (T, error) {
	future := async.Async(ctx, src, func(_ context.Context, r io.Reader) (result T, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("reqctx: body read panicked: %v", p)
			}
		}()
		return read(r)
	})
	return future.AwaitWithTimeout(timeout)
}
