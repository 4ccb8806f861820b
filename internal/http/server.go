package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mux := &http.ServeMux{}
	for mountpoint, handler := range s.opts.Mounts {
		mount(mux, mountpoint, handler)
	}

	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(slog.Default())(handler)

	server := http.Server{
		Addr:    s.opts.Address,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		if err := server.Close(); err != nil {
			slog.ErrorContext(ctx, "could not close server", slog.Any("error", errors.WithStack(err)))
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

// mount attaches handler at mountpoint. Prefix mountpoints (trailing
// slash) are stripped before dispatching to the handler's own routes;
// exact mountpoints are matched as is.
func mount(mux *http.ServeMux, mountpoint string, handler http.Handler) {
	trimmed := strings.TrimSuffix(mountpoint, "/")

	if strings.HasSuffix(mountpoint, "/") && len(trimmed) > 0 {
		mux.Handle(mountpoint, http.StripPrefix(trimmed, handler))
	} else {
		mux.Handle(mountpoint, handler)
	}
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	return &Server{
		opts: opts,
	}
}
