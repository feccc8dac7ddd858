package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/campus-dining-service/internal/poller"
)

// StubPoller implements the server's poller dependency for tests.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.StartCalls++
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// StubHTTPServer implements the server's httpServer for tests. ListenAndServe blocks until
// Shutdown unless ListenErr is set.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenErr     error
	ShutdownErr   error
	ListenCalls   int
	ShutdownCalls int

	stopped chan struct{}
}

func (s *StubHTTPServer) ensure() {
	if s.stopped == nil {
		s.stopped = make(chan struct{})
	}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	if s.ListenErr != nil {
		return s.ListenErr
	}
	<-s.stopped
	return http.ErrServerClosed
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls++
	select {
	case <-s.stopped:
	default:
		close(s.stopped)
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// NewStubHTTPServer returns a ready-to-use stub.
func NewStubHTTPServer(addr string) *StubHTTPServer {
	s := &StubHTTPServer{AddrVal: addr, HandlerVal: http.NewServeMux()}
	s.ensure()
	return s
}
