package reqctx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/core/reqctx"
)

func TestBuffer(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), nil)

	assert.Equal(t, []byte(`{"a":1}`), rc.Buffer(0))
	assert.True(t, rc.BodyUsed())

	// A drained body is replayed
	assert.Equal(t, []byte(`{"a":1}`), rc.Buffer(time.Second))
}

func TestBlob(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("binary"))
	r.Header.Set("Content-Type", "application/octet-stream")
	rc := newContext(r, nil)

	blob := rc.Blob(0)
	require.NotNil(t, blob)
	assert.Equal(t, "application/octet-stream", blob.ContentType)
	assert.Equal(t, []byte("binary"), blob.Data)
	assert.Equal(t, 6, blob.Size())
}

func TestRawReadAfterBody(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), &reqctx.Schemas{Body: reqctx.AnySchema()})

	_, err := rc.Body()
	require.NoError(t, err)

	assert.Equal(t, []byte(`{"a":1}`), rc.Buffer(0))
	blob := rc.Blob(0)
	require.NotNil(t, blob)
	assert.Equal(t, "application/json", blob.ContentType)
}

func TestFormData(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1&b=2&a=3"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rc := newContext(r, nil)

		fd := rc.FormData(0)
		require.NotNil(t, fd)
		assert.Equal(t, "1", fd.Get("a"))
		assert.Equal(t, []string{"1", "3"}, fd.Value["a"])
		assert.Equal(t, "2", fd.Get("b"))
		assert.Empty(t, fd.Get("missing"))
		assert.Empty(t, fd.File)

		// Replayed from the recorded body
		again := rc.FormData(0)
		require.NotNil(t, again)
		assert.Equal(t, fd.Value, again.Value)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		rc := newContext(multipartRequest(t), nil)
		t.Cleanup(func() { _ = rc.Close() })

		fd := rc.FormData(0)
		require.NotNil(t, fd)
		assert.Equal(t, "gopher", fd.Get("name"))
		require.Len(t, fd.File["avatar"], 1)
		assert.Equal(t, "avatar.png", fd.File["avatar"][0].Filename)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		t.Parallel()

		rc := newContext(jsonRequest(`{"a":1}`), nil)
		assert.Nil(t, rc.FormData(0))
	})

	t.Run("bad boundary", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("--x\r\n"))
		r.Header.Set("Content-Type", "multipart/form-data; boundary="+strings.Repeat("b", 71))
		rc := newContext(r, nil)
		assert.Nil(t, rc.FormData(0))
	})
}

func TestCloseRemovesFormFiles(t *testing.T) {
	t.Parallel()

	rc := newContext(multipartRequest(t), nil, reqctx.WithConfig(reqctx.Config{MaxFormMemory: 1}))

	fd := rc.FormData(0)
	require.NotNil(t, fd)
	require.Len(t, fd.File["avatar"], 1)
	fh := fd.File["avatar"][0]

	f, err := fh.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "not really a png", string(data))

	require.NoError(t, rc.Close())

	_, err = fh.Open()
	assert.Error(t, err)
}

func TestStream(t *testing.T) {
	t.Parallel()

	rc := newContext(jsonRequest(`{"a":1}`), nil)
	assert.False(t, rc.BodyUsed())

	s := rc.Stream()
	require.NotNil(t, s)
	assert.True(t, rc.BodyUsed())
	assert.Same(t, s, rc.Stream())

	data, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// Fully drained by the caller, so it can be replayed
	assert.Equal(t, []byte(`{"a":1}`), rc.Buffer(0))
}

func TestRawReadUnavailable(t *testing.T) {
	t.Parallel()

	t.Run("partially read stream", func(t *testing.T) {
		t.Parallel()

		rc := newContext(jsonRequest(`{"a":1}`), nil)
		buf := make([]byte, 2)
		_, err := io.ReadFull(rc.Stream(), buf)
		require.NoError(t, err)

		assert.Nil(t, rc.Buffer(0))
		assert.Nil(t, rc.Blob(0))
		assert.Nil(t, rc.FormData(0))
	})

	t.Run("body larger than record limit", func(t *testing.T) {
		t.Parallel()

		rc := newContext(jsonRequest(`"hello world"`), nil, reqctx.WithConfig(reqctx.Config{MaxBodySize: 4}))

		assert.Equal(t, []byte(`"hello world"`), rc.Buffer(0))
		assert.Nil(t, rc.Buffer(0))
	})

	t.Run("deadline", func(t *testing.T) {
		t.Parallel()

		rc := newContext(blockingRequest(t), nil)

		start := time.Now()
		assert.Nil(t, rc.Buffer(30*time.Millisecond))
		assert.Less(t, time.Since(start), time.Second)
		assert.True(t, rc.BodyUsed())
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()

		rc := newContext(httptest.NewRequest(http.MethodPost, "/", &failingReader{}), nil)
		assert.Nil(t, rc.Blob(0))
	})

	t.Run("panicking reader", func(t *testing.T) {
		t.Parallel()

		rc := newContext(httptest.NewRequest(http.MethodPost, "/", panickingReader{}), nil)
		assert.Nil(t, rc.Buffer(0))
	})
}
