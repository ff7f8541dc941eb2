package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-realm/internal/protocol"
	"github.com/pixil98/go-realm/internal/session"
	"github.com/pixil98/go-realm/internal/world"
)

const (
	shutdownTimeout = 5 * time.Second

	// A diagnostics probe of a wedged hub should fail fast rather than
	// pin the handler until the client gives up.
	diagnosticsTimeout = time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients are served from arbitrary dev hosts; there is no
	// auth layer to protect in the first place.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HTTPListener serves the websocket endpoint, the static client bundle,
// and the operational endpoints.
type HTTPListener struct {
	port      uint16
	clientDir string
	sessions  *session.Manager
	hub       *world.Hub

	wg          sync.WaitGroup
	connCtx     context.Context
	cancelConns context.CancelFunc
	started     time.Time
}

func NewHTTPListener(port uint16, clientDir string, sm *session.Manager, hub *world.Hub) *HTTPListener {
	return &HTTPListener{
		port:      port,
		clientDir: clientDir,
		sessions:  sm,
		hub:       hub,
	}
}

func (l *HTTPListener) Start(ctx context.Context) error {
	// Sessions share one cancelable context so shutdown drops them all.
	l.connCtx, l.cancelConns = context.WithCancel(context.Background())
	l.started = time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", l.handleWS)
	mux.HandleFunc("/healthz", l.handleHealthz)
	mux.HandleFunc("/diagnostics", l.handleDiagnostics)
	mux.HandleFunc("/schema", l.handleSchema)
	if l.clientDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(l.clientDir)))
	}

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = svr.Shutdown(sctx)
			// Shutdown does not touch hijacked websocket connections;
			// cancel them explicitly and wait for their sessions to end.
			l.cancelConns()
			l.wg.Wait()
		case <-done:
			// Start returned (likely with error) - nothing to stop
		}
	}()

	slog.InfoContext(ctx, "http listener serving", "addr", svr.Addr)

	err := svr.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("port %d is already in use (another server running?)", l.port)
	}
	return fmt.Errorf("serving http on port %d: %w", l.port, err)
}

func (l *HTTPListener) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	l.wg.Add(1)
	defer l.wg.Done()
	defer func() { _ = conn.Close() }()

	l.sessions.Accept(l.connCtx, conn)
}

func (l *HTTPListener) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

func (l *HTTPListener) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), diagnosticsTimeout)
	defer cancel()

	reply := make(chan world.Info, 1)
	if err := l.hub.Post(ctx, world.Stats{Reply: reply}); err != nil {
		http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
		return
	}

	select {
	case info := <-reply:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := renderDiagnostics(w, info, l.started); err != nil {
			slog.Warn("rendering diagnostics", "error", err)
		}
	case <-ctx.Done():
		http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
	}
}

func (l *HTTPListener) handleSchema(w http.ResponseWriter, _ *http.Request) {
	data, err := json.MarshalIndent(protocol.SchemaDocument(), "", "  ")
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
