package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tili-api/internal/api/shared"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/service/auth"
)

const testUserID int64 = 279058397

// newTestRouter mounts handlers the way the server does, with the caller
// identity injected directly instead of through init data.
func newTestRouter(mount func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("X-Test-Anonymous") == "" {
				req = req.WithContext(shared.WithIdentity(req.Context(), &auth.Identity{ID: testUserID}))
			}
			next.ServeHTTP(w, req)
		})
	})
	mount(r)
	return r
}

func serve(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return serveRequest(t, h, newJSONRequest(t, method, path, body))
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	return httptest.NewRequest(method, path, &buf)
}

func serveRequest(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func quietLogger() *slog.Logger {
	l, _ := logger.NewBufferLogger()
	return l
}
