package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sngm3741/match-intake/api/internal/config"
	intakeapp "github.com/sngm3741/match-intake/api/internal/intake/application"
	publichttp "github.com/sngm3741/match-intake/api/internal/interfaces/http/public"
)

// RecordStore is the durable medium the server owns for its whole lifetime.
type RecordStore interface {
	intakeapp.RecordStore
	Close(ctx context.Context) error
}

// Server は HTTP サーバーのライフサイクルを管理し、ハンドラへ依存注入するコンポジションルート。
// ストアはプロセスで一度だけ生成され、ここから Submission サービスへ渡される。
type Server struct {
	logger            *log.Logger
	store             RecordStore
	submissionService intakeapp.SubmissionService
	guard             *originGuard
	addr              string
	maxBodyBytes      int64
}

// New は Config と初期化済みストアを受け取り、サービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, store RecordStore) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = log.New(os.Stdout, "[match-intake-api] ", log.LstdFlags|log.Lshortfile)
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}

	return &Server{
		logger:            logger,
		store:             store,
		submissionService: intakeapp.NewSubmissionService(store, nil),
		guard:             newOriginGuard(cfg.AllowedOrigins, logger),
		addr:              cfg.Addr,
		maxBodyBytes:      maxBody,
	}
}

// Handler assembles the router: request middleware, then the public routes behind the origin guard.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:       s.logger,
		Submissions:  s.submissionService,
		MaxBodyBytes: s.maxBodyBytes,
	})
	publicHandler.Register(router, s.guard.middleware)

	return router
}

// Run はHTTPサーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s (保存先: %s)", s.addr, s.store.Location())
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// shutdown はストアをタイムアウト付きで閉じる。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.store.Close(shutdownCtx); err != nil {
		s.logger.Printf("ストアのクローズ時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	defer srv.shutdown(context.Background())

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}
	return nil
}
