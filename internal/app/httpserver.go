package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Spok95/sales-training-backend/internal/logging"
	"go.uber.org/zap"
)

type HTTPServer struct {
	srv  *http.Server
	done chan struct{}
}

// StartHTTP запускает сервер в фоне и гасит его по ctx.Done.
func StartHTTP(ctx context.Context, addr string, handler http.Handler, log *logging.Log) *HTTPServer {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	s := &HTTPServer{srv: srv, done: make(chan struct{})}

	go func() {
		log.Base.Info("http server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Base.Error("http server failed", zap.Error(err))
		}
	}()

	go func() {
		defer close(s.done)
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		log.Base.Info("http server stopped")
	}()

	return s
}

// Wait блокирует до завершения Shutdown.
func (s *HTTPServer) Wait() { <-s.done }
