package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/arcview/pkg/cache"
	"github.com/matzehuels/arcview/pkg/explorer"
	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/observability"
	"github.com/matzehuels/arcview/pkg/style"
)

func newApp(t *testing.T) *explorer.App {
	t.Helper()
	g, err := graph.New(
		map[int]string{0: "a", 1: "b", 2: "c"},
		[]graph.Arc{{Source: 0, Target: 1}, {Source: 1, Target: 2}},
		graph.Options{},
	)
	if err != nil {
		t.Fatal(err)
	}
	app, err := explorer.New(g, explorer.Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	return app
}

// startServer wires the hub and controller loop the way Serve does and
// exposes the router through httptest.
func startServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	app := newApp(t)
	s := New(app, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	unsubscribe := app.Controller.Subscribe(s.hub)
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Controller.Run(ctx, app.Controller.Inbox())
	}()

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.hub.Close()
		ts.Close()
		cancel()
		<-done
		unsubscribe()
	})
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestGraphPayload(t *testing.T) {
	_, ts := startServer(t, Config{})

	resp, body := get(t, ts.URL+"/api/graph")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	want := `{"nodes":[{"id":0,"label":"a","shape":"dot","size":7},{"id":1,"label":"b","shape":"dot","size":7},{"id":2,"label":"c","shape":"dot","size":7}],` +
		`"edges":[{"id":"0_1","from":0,"to":1,"width":2},{"id":"1_2","from":1,"to":2,"width":2}]}`
	if string(body) != want {
		t.Errorf("body =\n%s\nwant\n%s", body, want)
	}

	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/graph", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", resp2.StatusCode)
	}
}

func TestOptions(t *testing.T) {
	_, ts := startServer(t, Config{})

	_, body := get(t, ts.URL+"/api/options")
	want := `{"height":"600px","width":"100%","nodes":{"color":"#ff0000"}}`
	if strings.TrimSpace(string(body)) != want {
		t.Errorf("options = %s, want %s", body, want)
	}
}

func TestPostStyle(t *testing.T) {
	_, ts := startServer(t, Config{})

	resp, body := post(t, ts.URL+"/api/style", `{"color":"Green"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if got := strings.TrimSpace(string(body)); got != `{"nodes":{"color":"#00ff00"}}` {
		t.Errorf("patch = %s", got)
	}

	_, body = get(t, ts.URL+"/api/style")
	if got := strings.TrimSpace(string(body)); got != `{"nodes":{"color":"#00ff00"}}` {
		t.Errorf("current = %s", got)
	}

	// Topology is untouched by the selection.
	_, graphBody := get(t, ts.URL+"/api/graph")
	if strings.Contains(string(graphBody), "color") {
		t.Error("payload picked up style")
	}
}

func TestPostStyleRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"unknown color", `{"color":"Purple"}`, "INVALID_COLOR"},
		{"empty color", `{}`, "INVALID_COLOR"},
		{"bad json", `{"color":`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := startServer(t, Config{})

			resp, body := post(t, ts.URL+"/api/style", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatal(err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %s, want %s", e.Code, tt.code)
			}

			_, cur := get(t, ts.URL+"/api/style")
			if got := strings.TrimSpace(string(cur)); got != `{"nodes":{"color":"#ff0000"}}` {
				t.Errorf("style changed to %s", got)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	_, ts := startServer(t, Config{})

	_, body := get(t, ts.URL+"/healthz")
	var h healthResponse
	if err := json.Unmarshal(body, &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Vertices != 3 || h.Edges != 2 {
		t.Errorf("health = %+v", h)
	}
}

func TestPage(t *testing.T) {
	_, ts := startServer(t, Config{Title: "links"})

	resp, body := get(t, ts.URL+"/")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}
	page := string(body)
	for _, want := range []string{
		"<title>links</title>",
		`value="Red" data-code="#ff0000" checked`,
		`value="Green" data-code="#00ff00">`,
		`value="Blue" data-code="#0000ff">`,
		"vis-network",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestSnapshotBadEngine(t *testing.T) {
	_, ts := startServer(t, Config{})
	resp, _ := get(t, ts.URL+"/snapshot.svg?engine=bogus")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSnapshot(t *testing.T) {
	snapshots := cache.NewMemoryCache(4)
	s, ts := startServer(t, Config{Cache: snapshots})

	resp, body := get(t, ts.URL+"/snapshot.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %s", ct)
	}
	if !strings.Contains(string(body), "<svg") || !strings.Contains(string(body), "#ff0000") {
		t.Errorf("snapshot is not a red SVG rendering:\n%.200s", body)
	}
	if snapshots.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", snapshots.Len())
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/snapshot.svg", nil)
	req.Header.Set("If-None-Match", resp.Header.Get("ETag"))
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", resp2.StatusCode)
	}

	if _, err := s.app.Controller.Select(context.Background(), style.Blue); err != nil {
		t.Fatal(err)
	}
	resp3, body := get(t, ts.URL+"/snapshot.svg")
	if resp3.Header.Get("ETag") == resp.Header.Get("ETag") || !strings.Contains(string(body), "#0000ff") {
		t.Error("snapshot did not follow the selected color")
	}
	if snapshots.Len() != 2 {
		t.Errorf("cache entries = %d, want 2", snapshots.Len())
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.SetHTTPHooks(observability.NewPrometheus(reg))
	t.Cleanup(observability.Reset)

	_, ts := startServer(t, Config{Gatherer: reg})
	get(t, ts.URL+"/healthz")

	_, body := get(t, ts.URL+"/metrics")
	want := `arcview_http_requests_total{method="GET",route="/healthz",status="2xx"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("metrics missing %q:\n%s", want, body)
	}
}

func TestMetricsDisabled(t *testing.T) {
	_, ts := startServer(t, Config{})
	resp, _ := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

// =============================================================================
// WebSocket
// =============================================================================

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var m Message
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestWebSocketInitialPatch(t *testing.T) {
	_, ts := startServer(t, Config{})
	conn := dial(t, ts)

	m := readMessage(t, conn)
	if m.Type != TypePatch || m.Patch == nil || m.Patch.Nodes.Color != "#ff0000" {
		t.Errorf("first frame = %+v, want Red patch", m)
	}
}

func TestWebSocketInitialPatchIsLastEmitted(t *testing.T) {
	s, ts := startServer(t, Config{})
	if err := s.hub.Emit(context.Background(), style.PatchFor(style.Blue)); err != nil {
		t.Fatal(err)
	}

	m := readMessage(t, dial(t, ts))
	if m.Patch == nil || m.Patch.Nodes.Color != "#0000ff" {
		t.Errorf("first frame = %+v, want the Blue patch already broadcast", m)
	}
}

func TestWebSocketSelectBroadcasts(t *testing.T) {
	_, ts := startServer(t, Config{})
	a := dial(t, ts)
	b := dial(t, ts)
	readMessage(t, a)
	readMessage(t, b)

	if err := a.WriteJSON(Message{Type: TypeSelect, Color: "Blue"}); err != nil {
		t.Fatal(err)
	}

	for name, conn := range map[string]*websocket.Conn{"sender": a, "peer": b} {
		m := readMessage(t, conn)
		if m.Type != TypePatch || m.Patch.Nodes.Color != "#0000ff" {
			t.Errorf("%s got %+v, want Blue patch", name, m)
		}
	}
}

func TestWebSocketPostBroadcasts(t *testing.T) {
	_, ts := startServer(t, Config{})
	conn := dial(t, ts)
	readMessage(t, conn)

	post(t, ts.URL+"/api/style", `{"color":"Green"}`)

	m := readMessage(t, conn)
	if m.Patch == nil || m.Patch.Nodes.Color != "#00ff00" {
		t.Errorf("got %+v, want Green patch", m)
	}
}

func TestWebSocketInvalidColor(t *testing.T) {
	s, ts := startServer(t, Config{})
	conn := dial(t, ts)
	readMessage(t, conn)

	if err := conn.WriteJSON(Message{Type: TypeSelect, Color: "Purple"}); err != nil {
		t.Fatal(err)
	}
	m := readMessage(t, conn)
	if m.Type != TypeError || m.Code != "INVALID_COLOR" {
		t.Errorf("got %+v, want INVALID_COLOR error", m)
	}
	if s.app.Controller.Color() != style.Red {
		t.Error("invalid selection changed the color")
	}
}

func TestHubClose(t *testing.T) {
	s, ts := startServer(t, Config{})
	conn := dial(t, ts)
	readMessage(t, conn)

	s.hub.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after close = %v, want normal closure", err)
	}
	if err := s.hub.Emit(context.Background(), style.PatchFor(style.Green)); err == nil {
		t.Error("Emit on closed hub succeeded")
	}
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestServeShutdown(t *testing.T) {
	app := newApp(t)
	s := New(app, Config{Logger: log.New(io.Discard), ShutdownTimeout: time.Second})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	_, body := get(t, "http://"+ln.Addr().String()+"/healthz")
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("health = %s", body)
	}
	resp, body := post(t, "http://"+ln.Addr().String()+"/api/style", `{"color":"Blue"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("select status = %d: %s", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
