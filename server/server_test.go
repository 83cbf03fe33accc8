package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracon/scopecmd/internal/log"
)

const testScenario = `
format = "SCOPE"
type = "DATA"

[scenario]
name = "Boston"
airport = "KBOS"

[[aircraft]]
callsign = "AA777"
heading = 10
altitude = 5000
speed = 210
`

func newTestServer(t *testing.T) *Server {
	srv, err := New(Config{UnauthDelayMillis: -1}, log.NewWithWriter(io.Discard, slog.LevelError))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, tok string, body any) (int, map[string]any, []byte) {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	raw := w.Body.Bytes()
	var obj map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &obj))
	}
	return w.Code, obj, raw
}

func createSession(t *testing.T, srv *Server) (id, tok string) {
	status, resp, _ := doRequest(t, srv, "POST", "/api/v1/sessions", "", map[string]any{"scenario": testScenario})
	require.Equal(t, http.StatusCreated, status)
	return resp["id"].(string), resp["token"].(string)
}

func Test_Server_info(t *testing.T) {
	srv := newTestServer(t)

	status, resp, _ := doRequest(t, srv, "GET", "/api/v1/info", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp, "version")
}

func Test_Server_commands(t *testing.T) {
	srv := newTestServer(t)

	status, _, raw := doRequest(t, srv, "GET", "/api/v1/commands", "", nil)
	require.Equal(t, http.StatusOK, status)

	body := string(raw)
	assert.Contains(t, body, `"system":{"airac":["airac"]`)
	assert.Contains(t, body, `"quit":["bye","exit","quit"]`)
	assert.Contains(t, body, `"entity":{`)
	assert.Less(t, bytes.Index(raw, []byte(`"system"`)), bytes.Index(raw, []byte(`"entity"`)))
}

func Test_Server_createSession(t *testing.T) {
	testCases := []struct {
		name         string
		body         any
		expectStatus int
	}{
		{name: "no body", expectStatus: http.StatusCreated},
		{name: "empty object", body: map[string]any{}, expectStatus: http.StatusCreated},
		{name: "scenario", body: map[string]any{"scenario": testScenario}, expectStatus: http.StatusCreated},
		{name: "bad scenario", body: map[string]any{"scenario": "format = 1"}, expectStatus: http.StatusBadRequest},
		{name: "scenario not a string", body: map[string]any{"scenario": 3}, expectStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t)

			status, resp, _ := doRequest(t, srv, "POST", "/api/v1/sessions", "", tc.body)
			assert.Equal(t, tc.expectStatus, status)
			if status == http.StatusCreated {
				assert.NotEmpty(t, resp["id"])
				assert.NotEmpty(t, resp["token"])
			}
		})
	}
}

func Test_Server_executeLine(t *testing.T) {
	testCases := []struct {
		name           string
		line           any
		expectStatus   int
		expectReadback []any
		expectError    string
	}{
		{
			name:           "entity line",
			line:           "AA777 FH 270",
			expectStatus:   http.StatusOK,
			expectReadback: []any{"AA777, fly heading 270"},
		},
		{
			name:         "non-string line",
			line:         12,
			expectStatus: http.StatusBadRequest,
			expectError:  "Commands must be entered as text",
		},
		{
			name:         "missing line",
			expectStatus: http.StatusBadRequest,
			expectError:  "Commands must be entered as text",
		},
		{
			name:         "unknown aircraft",
			line:         "UA1 FH 270",
			expectStatus: http.StatusUnprocessableEntity,
			expectError:  "No aircraft with callsign UA1",
		},
		{
			name:         "bad arity",
			line:         "AA777 FH",
			expectStatus: http.StatusUnprocessableEntity,
		},
		{
			name:         "unknown command",
			line:         "AA777 ZZ 1",
			expectStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t)
			id, tok := createSession(t, srv)

			body := map[string]any{}
			if tc.line != nil {
				body["line"] = tc.line
			}

			status, resp, _ := doRequest(t, srv, "POST", "/api/v1/sessions/"+id+"/commands", tok, body)
			assert.Equal(t, tc.expectStatus, status)
			if tc.expectReadback != nil {
				assert.Equal(t, tc.expectReadback, resp["readback"])
			}
			if tc.expectError != "" {
				assert.Equal(t, tc.expectError, resp["error"])
			}
		})
	}
}

func Test_Server_sessionLifecycle(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	id, tok := createSession(t, srv)
	sessionPath := "/api/v1/sessions/" + id

	status, _, _ := doRequest(t, srv, "POST", sessionPath+"/commands", tok, map[string]any{"line": "aa777 c 120"})
	require.Equal(t, http.StatusOK, status)

	status, resp, _ := doRequest(t, srv, "GET", sessionPath, tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal("KBOS", resp["airport"])
	aircraft := resp["aircraft"].([]any)
	require.Len(t, aircraft, 1)
	assert.Equal(float64(12000), aircraft[0].(map[string]any)["assigned_altitude"])

	status, _, raw := doRequest(t, srv, "GET", sessionPath+"/commands", tok, nil)
	require.Equal(t, http.StatusOK, status)
	var hist []map[string]any
	require.NoError(t, json.Unmarshal(raw, &hist))
	require.Len(t, hist, 1)
	assert.Equal("aa777 c 120", hist[0]["line"])

	status, _, _ = doRequest(t, srv, "DELETE", sessionPath, tok, nil)
	assert.Equal(http.StatusNoContent, status)

	// the token's session is gone, so the token is no good anymore
	status, _, _ = doRequest(t, srv, "GET", sessionPath, tok, nil)
	assert.Equal(http.StatusUnauthorized, status)
}

func Test_Server_auth(t *testing.T) {
	srv := newTestServer(t)
	id, tok := createSession(t, srv)
	otherID, otherTok := createSession(t, srv)

	testCases := []struct {
		name         string
		path         string
		tok          string
		expectStatus int
	}{
		{name: "no token", path: "/api/v1/sessions/" + id, expectStatus: http.StatusUnauthorized},
		{name: "garbage token", path: "/api/v1/sessions/" + id, tok: "abc", expectStatus: http.StatusUnauthorized},
		{name: "other session's token", path: "/api/v1/sessions/" + id, tok: otherTok, expectStatus: http.StatusForbidden},
		{name: "own token", path: "/api/v1/sessions/" + otherID, tok: otherTok, expectStatus: http.StatusOK},
		{name: "right token", path: "/api/v1/sessions/" + id, tok: tok, expectStatus: http.StatusOK},
		{name: "not a uuid", path: "/api/v1/sessions/12", tok: tok, expectStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, _ := doRequest(t, srv, "GET", tc.path, tc.tok, nil)
			assert.Equal(t, tc.expectStatus, status)
		})
	}
}
