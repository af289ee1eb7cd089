package reqctx_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/reqkit/core/logger"
	"github.com/dmitrymomot/reqkit/core/reqctx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockSchema records Parse calls.
type mockSchema struct {
	mock.Mock
}

func (m *mockSchema) Parse(raw any) (any, error) {
	args := m.Called(raw)
	return args.Get(0), args.Error(1)
}

var errRejected = errors.New("value rejected")

// rejectSchema rejects every value.
func rejectSchema() reqctx.Schema {
	return reqctx.SchemaFunc[any](func(any) (any, error) {
		return nil, errRejected
	})
}

// requireKeys accepts mappings that contain every key.
func requireKeys[V any](keys ...string) reqctx.Schema {
	return reqctx.SchemaFunc[map[string]V](func(raw any) (map[string]V, error) {
		m, ok := raw.(map[string]V)
		if !ok {
			return nil, fmt.Errorf("unexpected %T", raw)
		}
		for _, key := range keys {
			if _, ok := m[key]; !ok {
				return nil, fmt.Errorf("%s: required", key)
			}
		}
		return m, nil
	})
}

func newContext(r *http.Request, schemas *reqctx.Schemas, opts ...reqctx.Option) *reqctx.Context {
	opts = append([]reqctx.Option{reqctx.WithLogger(logger.Discard())}, opts...)
	return reqctx.New(nil, r.URL.RawQuery, r, schemas, opts...)
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// blockingRequest returns a request whose body never delivers data until the test ends.
func blockingRequest(t *testing.T) *http.Request {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	return httptest.NewRequest(http.MethodPost, "/", pr)
}

// samePointer reports whether two map values share the same underlying map.
func samePointer(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// failingReader delivers some bytes and then fails.
type failingReader struct {
	sent bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.sent {
		f.sent = true
		return copy(p, `{"partial":`), nil
	}
	return 0, errors.New("connection reset")
}

// panickingReader panics on read.
type panickingReader struct{}

func (panickingReader) Read([]byte) (int, error) {
	panic("reader exploded")
}
