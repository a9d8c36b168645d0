package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/pokerbot/internal/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	svc, _ := newTestService(t, bot.NewCallBot())
	srv := NewServer("127.0.0.1:0", svc, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createGame(t *testing.T, baseURL string) string {
	t.Helper()
	var view TableView
	status := doJSON(t, http.MethodPost, baseURL+"/api/game", nil, &view)
	require.Equal(t, http.StatusCreated, status)
	return view.ID
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestHTTPGameFlow(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)
	id := createGame(t, ts.URL)
	base := ts.URL + "/api/game/" + id

	var view TableView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, base, nil, &view))
	assert.Equal(t, id, view.ID)

	var res CommandResult
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/deal", nil, &res))
	assert.Equal(t, 15, res.Table.Pot)

	res = CommandResult{}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/action", ActionRequest{Action: "raise", RaiseAmount: 20}, &res))
	assert.Equal(t, 30, res.Table.Player.Bet)
	assert.Equal(t, 60, res.Table.Pot, "bot calls the raise")

	res = CommandResult{}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/advance", nil, &res))
	assert.Equal(t, "flop", res.Table.Street)
	assert.Len(t, res.Table.Community, 3)

	res = CommandResult{}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/step", nil, &res))
	assert.Equal(t, "turn", res.Table.Street)

	view = TableView{}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/settings", SettingsRequest{Difficulty: "hard"}, &view))
	assert.Equal(t, "hard", view.Difficulty)

	require.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, base, nil, nil))

	var apiErr ErrorResponse
	require.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, base, nil, &apiErr))
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestHTTPErrorMapping(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)
	id := createGame(t, ts.URL)
	base := ts.URL + "/api/game/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"action before deal", http.MethodPost, "/action", ActionRequest{Action: "call"}, http.StatusConflict, "invalid_state"},
		{"advance before deal", http.MethodPost, "/advance", nil, http.StatusConflict, "invalid_state"},
		{"unknown action", http.MethodPost, "/action", ActionRequest{Action: "shove"}, http.StatusBadRequest, "invalid_action"},
		{"bad difficulty", http.MethodPost, "/settings", SettingsRequest{Difficulty: "brutal"}, http.StatusBadRequest, "bad_request"},
		{"unknown field", http.MethodPost, "/action", map[string]string{"verb": "call"}, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		var apiErr ErrorResponse
		status := doJSON(t, tt.method, base+tt.path, tt.body, &apiErr)
		assert.Equal(t, tt.status, status, tt.name)
		assert.Equal(t, tt.code, apiErr.Code, tt.name)
		assert.NotEmpty(t, apiErr.Error, tt.name)
	}

	var apiErr ErrorResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/api/game/nope/deal", nil, &apiErr)
	assert.Equal(t, http.StatusNotFound, status)
}

func dialTable(t *testing.T, ts *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/game/" + id + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) CommandResult {
	t.Helper()
	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeState, msg.Type)
	var res CommandResult
	require.NoError(t, json.Unmarshal(msg.Data, &res))
	return res
}

func TestWebSocketPlaysTable(t *testing.T) {
	t.Parallel()
	srv, ts := newTestServer(t)
	id := createGame(t, ts.URL)

	conn := dialTable(t, ts, id)
	initial := readState(t, conn)
	assert.Equal(t, id, initial.Table.ID)
	assert.Zero(t, initial.Table.HandNumber)

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypeDeal}))
	dealt := readState(t, conn)
	assert.Equal(t, 1, dealt.Table.HandNumber)
	assert.Len(t, dealt.Table.Player.Hole, 2)

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypeAction, Data: json.RawMessage(`{"action":"check"}`)}))
	acted := readState(t, conn)
	assert.Equal(t, 20, acted.Table.Pot)
	assert.Len(t, acted.Events, 2)

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypeDeal}))
	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)
	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "invalid_state", data.Code)

	require.NoError(t, conn.WriteJSON(Message{Type: "dance"}))
	msg = readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)

	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestWebSocketReceivesHTTPCommands(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)
	id := createGame(t, ts.URL)

	conn := dialTable(t, ts, id)
	readState(t, conn)

	var res CommandResult
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/game/"+id+"/deal", nil, &res))

	pushed := readState(t, conn)
	assert.Equal(t, res.Table.Player.Hole, pushed.Table.Player.Hole)

	require.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, ts.URL+"/api/game/"+id, nil, nil))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "deleting the table closes the feed: %v", err)
}

func TestWebSocketUnknownTable(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/game/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
