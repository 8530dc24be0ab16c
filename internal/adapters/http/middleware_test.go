package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line), sc.Text())
		if line["msg"] == msg {
			out = append(out, line)
		}
	}
	require.NoError(t, sc.Err())
	return out
}

func TestLoggingMiddleware_GameID(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedServer(t, slog.New(slog.NewJSONHandler(&buf, nil)))
	g := createGame(t, e)

	rec := do(t, e, http.MethodPost, "/v1/games/"+g.ID+"/moves", `{"from":"tableau-11","to":"hearts"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	do(t, e, http.MethodGet, "/v1/variants/cruel/rules", "")
	do(t, e, http.MethodGet, "/healthz", "")

	lines := logLines(t, &buf, "request")
	require.Len(t, lines, 4)

	create, move, rules, health := lines[0], lines[1], lines[2], lines[3]
	assert.Equal(t, "/v1/games", create["route"])
	assert.NotContains(t, create, "game_id")

	assert.Equal(t, "/v1/games/:id/moves", move["route"])
	assert.Equal(t, g.ID, move["game_id"])
	assert.Equal(t, "http", move["component"])
	assert.Equal(t, float64(http.StatusOK), move["status"])
	assert.NotEmpty(t, move["request_id"])

	assert.NotContains(t, rules, "game_id", "a variant id is not a game id")
	assert.NotContains(t, health, "game_id")
}

func TestLoggingMiddleware_UnknownGame(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedServer(t, slog.New(slog.NewJSONHandler(&buf, nil)))

	rec := do(t, e, http.MethodGet, "/v1/games/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	lines := logLines(t, &buf, "request")
	require.Len(t, lines, 1)
	assert.Equal(t, "missing", lines[0]["game_id"])
	assert.Equal(t, float64(http.StatusNotFound), lines[0]["status"])
	assert.Equal(t, "INFO", lines[0]["level"])
}

func TestHealthz_LogsThroughHandlerLogger(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedServer(t, slog.New(slog.NewJSONHandler(&buf, nil)),
		fakePinger{name: "nats", err: errors.New("no servers")})

	rec := do(t, e, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	lines := logLines(t, &buf, "health check failed")
	require.Len(t, lines, 1)
	assert.Equal(t, "http", lines[0]["component"])
	assert.Equal(t, "nats", lines[0]["backend"])
	assert.Equal(t, "no servers", lines[0]["error"])
}
