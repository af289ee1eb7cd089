package reqctx_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/core/reqctx"
	"github.com/dmitrymomot/reqkit/core/response"
)

// multipartRequest builds a multipart/form-data request with one field and one file.
func multipartRequest(t *testing.T) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "gopher"))
	require.NoError(t, w.WriteField("tag", "first"))
	require.NoError(t, w.WriteField("tag", "last"))
	fw, err := w.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func TestBodyWithoutSchema(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), nil)
	v, err := rc.Body()
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.False(t, rc.BodyUsed())
}

func TestBodyJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want any
	}{
		{"object", `{"name":"gopher","age":13}`, map[string]any{"name": "gopher", "age": float64(13)}},
		{"array", `[1,2]`, []any{float64(1), float64(2)}},
		{"string", `"hi"`, "hi"},
		{"trailing whitespace", "{\"a\":true}\n\n", map[string]any{"a": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := newContext(jsonRequest(tt.body), &reqctx.Schemas{Body: reqctx.AnySchema()})
			v, err := rc.Body()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.True(t, rc.BodyUsed())
		})
	}
}

func TestBodyMalformedJSON(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"invalid":       `{"a":`,
		"empty":         ``,
		"trailing data": `{"a":1} {"b":2}`,
		"not json":      `hello`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rc := newContext(jsonRequest(body), &reqctx.Schemas{Body: reqctx.AnySchema()})
			v, err := rc.Body()
			assert.Nil(t, v)
			assert.ErrorIs(t, err, reqctx.ErrMalformedBody)
			assert.ErrorIs(t, err, response.ErrBadRequest)
			assert.Equal(t, http.StatusBadRequest, response.StatusCode(err))
		})
	}
}

func TestBodyText(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello, world"))
		r.Header.Set("Content-Type", "text/plain")
		rc := newContext(r, &reqctx.Schemas{Body: reqctx.StringSchema(), BodyShape: reqctx.ShapeString})

		v, err := rc.Body()
		require.NoError(t, err)
		assert.Equal(t, "hello, world", v)
	})

	t.Run("json content type is still read as text", func(t *testing.T) {
		t.Parallel()

		rc := newContext(jsonRequest(`{"a":1}`), &reqctx.Schemas{Body: reqctx.StringSchema(), BodyShape: reqctx.ShapeString})

		v, err := rc.Body()
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, v)
	})

	t.Run("invalid utf-8 is replaced", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok\xff"))
		rc := newContext(r, &reqctx.Schemas{Body: reqctx.StringSchema(), BodyShape: reqctx.ShapeString})

		v, err := rc.Body()
		require.NoError(t, err)
		assert.Equal(t, "ok\uFFFD", v)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		rc := newContext(r, &reqctx.Schemas{Body: reqctx.StringSchema(), BodyShape: reqctx.ShapeString})

		v, err := rc.Body()
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})
}

func TestBodyMultipartTransform(t *testing.T) {
	t.Parallel()

	rc := newContext(multipartRequest(t), &reqctx.Schemas{Body: reqctx.AnySchema(), Transform: true})
	t.Cleanup(func() { _ = rc.Close() })

	form, err := reqctx.As[map[string]any](rc.Body())
	require.NoError(t, err)

	assert.Equal(t, "gopher", form["name"])
	assert.Equal(t, "last", form["tag"])
	require.IsType(t, &multipart.FileHeader{}, form["avatar"])

	fh := form["avatar"].(*multipart.FileHeader)
	assert.Equal(t, "avatar.png", fh.Filename)
	assert.EqualValues(t, len("not really a png"), fh.Size)
}

func TestBodyMultipartWithoutTransformIsJSON(t *testing.T) {
	t.Parallel()

	rc := newContext(multipartRequest(t), &reqctx.Schemas{Body: reqctx.AnySchema()})

	_, err := rc.Body()
	assert.ErrorIs(t, err, reqctx.ErrMalformedBody)
}

func TestBodyTransformIgnoresOtherContentTypes(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), &reqctx.Schemas{Body: reqctx.AnySchema(), Transform: true})

	v, err := rc.Body()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)
}

func TestBodyTimeout(t *testing.T) {
	t.Parallel()

	rc := newContext(blockingRequest(t),
		&reqctx.Schemas{Body: reqctx.AnySchema()},
		reqctx.WithConfig(reqctx.Config{BodyTimeout: 50 * time.Millisecond}),
	)

	start := time.Now()
	v, err := rc.Body()
	elapsed := time.Since(start)

	assert.Nil(t, v)
	assert.ErrorIs(t, err, reqctx.ErrBodyTimeout)
	assert.ErrorIs(t, err, response.ErrPayloadTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, response.StatusCode(err))
	assert.Less(t, elapsed, time.Second)

	// The abandoned read never reached EOF, so there is nothing to replay
	assert.Nil(t, rc.Buffer(10*time.Millisecond))
}

func TestBodySchemaRejection(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), &reqctx.Schemas{Body: rejectSchema()})

	v, err := rc.Body()
	assert.Nil(t, v)
	assert.ErrorIs(t, err, reqctx.ErrInvalidBody)
	assert.NotErrorIs(t, err, reqctx.ErrMalformedBody)
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode(err))
}

func TestBodySecondCall(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), &reqctx.Schemas{Body: reqctx.AnySchema()})

	_, err := rc.Body()
	require.NoError(t, err)

	_, err = rc.Body()
	assert.ErrorIs(t, err, reqctx.ErrBodyConsumed)
	assert.ErrorIs(t, err, response.ErrBadRequest)
}

func TestBodyAfterStream(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), &reqctx.Schemas{Body: reqctx.AnySchema()})
	require.NotNil(t, rc.Stream())

	_, err := rc.Body()
	assert.ErrorIs(t, err, reqctx.ErrBodyConsumed)
}

func TestBodyReadFailures(t *testing.T) {
	t.Parallel()

	t.Run("connection error", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", &failingReader{})
		rc := newContext(r, &reqctx.Schemas{Body: reqctx.AnySchema()})

		_, err := rc.Body()
		assert.ErrorIs(t, err, reqctx.ErrMalformedBody)
		assert.NotErrorIs(t, err, reqctx.ErrBodyTimeout)
	})

	t.Run("panicking reader", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", panickingReader{})
		rc := newContext(r, &reqctx.Schemas{Body: reqctx.AnySchema()})

		_, err := rc.Body()
		assert.ErrorIs(t, err, reqctx.ErrMalformedBody)
	})
}
