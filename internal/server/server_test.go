package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/goleak"

	"github.com/jpalmerr/plotboard/dashboard"
	"github.com/jpalmerr/plotboard/internal/plot"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFigure() plot.Figure {
	return plot.Figure{
		Data: []plot.Trace{{
			Type:          "scatter",
			Mode:          "markers",
			X:             []float64{1, 3},
			Y:             []float64{2, 4},
			CustomData:    [][]string{{"A"}, {"B"}},
			HoverTemplate: "X-axis=%{x}<br>Y-axis=%{y}<br>competitorname=%{customdata[0]}<extra></extra>",
		}},
		Layout: plot.Layout{Title: plot.Title{Text: "Interactive Scatter Plot"}},
	}
}

func testPage() Page {
	return Page{
		Title:     "Interactive Scatter Plot",
		PlotlyURL: "https://cdn.plot.ly/plotly-2.35.2.min.js",
		Figure:    testFigure(),
	}
}

func newTestServer(t *testing.T, page Page) *Server {
	t.Helper()
	srv, err := NewServer(page, "127.0.0.1:0", dashboard.Assets, false, testLogger())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv
}

// extractFigure pulls the embedded figure JSON out of a rendered page.
func extractFigure(t *testing.T, body string) plot.Figure {
	t.Helper()
	const open = `<script type="application/json" id="figure-data">`
	start := strings.Index(body, open)
	if start < 0 {
		t.Fatalf("figure data block not found in page")
	}
	rest := body[start+len(open):]
	end := strings.Index(rest, "</script>")
	if end < 0 {
		t.Fatalf("figure data block not terminated")
	}

	var fig plot.Figure
	if err := json.Unmarshal([]byte(rest[:end]), &fig); err != nil {
		t.Fatalf("figure data is not valid JSON: %v\n%s", err, rest[:end])
	}
	return fig
}

func TestRender_EmbeddedAssets(t *testing.T) {
	out, err := Render(dashboard.Assets, testPage())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := string(out)

	if !strings.Contains(body, "<title>Interactive Scatter Plot</title>") {
		t.Errorf("page missing title, got: %s", body)
	}
	if !strings.Contains(body, `id="scatter-plot"`) {
		t.Error("page missing chart element")
	}
	if strings.Count(body, `id="scatter-plot"`) != 1 {
		t.Error("page should contain exactly one chart element")
	}
	if !strings.Contains(body, `src="https://cdn.plot.ly/plotly-2.35.2.min.js"`) {
		t.Error("page missing plotly script")
	}

	fig := extractFigure(t, body)
	points := fig.Points()
	if len(points) != 2 {
		t.Fatalf("embedded figure has %d points, want 2", len(points))
	}
	if points[0].X != 1 || points[0].Y != 2 || points[0].Hover[0] != "A" {
		t.Errorf("point 0 = %+v, want (1,2) A", points[0])
	}
	if points[1].X != 3 || points[1].Y != 4 || points[1].Hover[0] != "B" {
		t.Errorf("point 1 = %+v, want (3,4) B", points[1])
	}
}

func TestRender_Deterministic(t *testing.T) {
	a, err := Render(dashboard.Assets, testPage())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := Render(dashboard.Assets, testPage())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("rendering the same page twice produced different bytes")
	}
}

func TestRender_DefaultTitle(t *testing.T) {
	assets := fstest.MapFS{"assets/index.html": {Data: []byte("<title>{{.Title}}</title>")}}
	out, err := Render(assets, Page{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(out) != "<title>Interactive Scatter Plot</title>" {
		t.Errorf("expected default title, got: %s", out)
	}
}

func TestRender_TitleWithHTMLChars(t *testing.T) {
	page := testPage()
	page.Title = "<script>alert('xss')</script>"

	out, err := Render(dashboard.Assets, page)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := string(out)

	if strings.Contains(body, "<script>alert") {
		t.Error("title should be HTML-escaped to prevent XSS")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("expected escaped HTML, got: %s", body)
	}
}

func TestRender_LabelCannotBreakOutOfScript(t *testing.T) {
	page := testPage()
	page.Figure.Data[0].CustomData[0][0] = "</script><script>alert(1)</script>"

	out, err := Render(dashboard.Assets, page)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	fig := extractFigure(t, string(out))
	if got := fig.Points()[0].Hover[0]; got != "</script><script>alert(1)</script>" {
		t.Errorf("label round-trip = %q", got)
	}
}

func TestRender_MissingAssets(t *testing.T) {
	if _, err := Render(nil, testPage()); err == nil {
		t.Error("Render() with nil assets should fail")
	}

	_, err := Render(fstest.MapFS{}, testPage())
	if err == nil || !strings.Contains(err.Error(), "dashboard not found") {
		t.Errorf("expected dashboard not found error, got: %v", err)
	}
}

func TestRender_BadTemplate(t *testing.T) {
	assets := fstest.MapFS{"assets/index.html": {Data: []byte("{{.Title")}}
	if _, err := Render(assets, testPage()); err == nil {
		t.Error("Render() with broken template should fail")
	}
}

func TestHandler_Routes(t *testing.T) {
	srv := newTestServer(t, testPage())
	h := srv.Handler()

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantBody bool
	}{
		{http.MethodGet, "/", http.StatusOK, true},
		{http.MethodHead, "/", http.StatusOK, false},
		{http.MethodPost, "/", http.StatusMethodNotAllowed, false},
		{http.MethodGet, "/other", http.StatusNotFound, false},
		{http.MethodGet, "/api/status", http.StatusNotFound, false},
		{http.MethodGet, "/?x=1", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			hasPage := bytes.Equal(rec.Body.Bytes(), srv.Page())
			if hasPage != tt.wantBody {
				t.Errorf("body is page = %v, want %v", hasPage, tt.wantBody)
			}
		})
	}
}

func TestHandler_Headers(t *testing.T) {
	srv := newTestServer(t, testPage())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
}

func TestHandler_ConditionalGet(t *testing.T) {
	srv := newTestServer(t, testPage())
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	etag := rec.Header().Get("ETag")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotModified)
	}
}

func TestNewServer_SamePageSameETag(t *testing.T) {
	a := newTestServer(t, testPage())
	b := newTestServer(t, testPage())
	if a.etag != b.etag {
		t.Errorf("etags differ: %s vs %s", a.etag, b.etag)
	}

	page := testPage()
	page.Title = "Other"
	c := newTestServer(t, page)
	if a.etag == c.etag {
		t.Error("different pages should have different etags")
	}
}

func TestRecoverer(t *testing.T) {
	srv := newTestServer(t, testPage())
	h := srv.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "correlation_id") {
		t.Errorf("expected correlation id in body, got: %s", rec.Body.String())
	}
}

func TestLogRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv, err := NewServer(testPage(), "127.0.0.1:0", dashboard.Assets, true, logger)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	if !strings.Contains(out, "request served") || !strings.Contains(out, "status=404") {
		t.Errorf("expected debug request log with status, got: %s", out)
	}
}

func TestServe_ServesUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := newTestServer(t, testPage())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		cancel()
		t.Fatalf("GET / error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !bytes.Equal(body, srv.Page()) {
		t.Error("served body differs from rendered page")
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() returned error: %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("Serve() did not return after context cancellation")
	}
	client.CloseIdleConnections()
}

func TestRun_PortInUse_ReturnsError(t *testing.T) {
	// occupy a port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer func() { _ = ln.Close() }()

	srv, err := NewServer(testPage(), ln.Addr().String(), dashboard.Assets, false, testLogger())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = srv.Run(ctx)
	if err == nil {
		t.Fatal("Run() on occupied port should return error")
	}
	if !strings.Contains(err.Error(), "failed to bind") {
		t.Errorf("expected bind error, got: %v", err)
	}
}

func TestRun_InvalidAddr_ReturnsError(t *testing.T) {
	srv, err := NewServer(testPage(), "127.0.0.1:-1", dashboard.Assets, false, testLogger())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("Run() with invalid address should return error")
	}
}
