package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"storefront/internal/middleware"
	"storefront/internal/repository"
)

// 停止時に処理中リクエストを待つ時間
const shutdownTimeout = 20 * time.Second

type Options struct {
	Addr      string
	JWTSecret string
	FEURL     string
}

type Server struct {
	e    *echo.Echo
	addr string
	log  *slog.Logger
}

// New は共通ミドルウェアとルートを載せた echo を作る。
// 認証は全ルートで任意、必須かどうかは各グループで決める。
func New(opts Options, userRepo repository.UserRepository, h Handlers, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{opts.FEURL},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, middleware.CartSessionHeader},
		ExposeHeaders:    []string{middleware.CartSessionHeader},
		AllowCredentials: true,
	}))
	e.Use(middleware.AuthJWT(opts.JWTSecret))
	e.Use(middleware.LoadUser(userRepo))

	RegisterRoutes(e, h)

	return &Server{e: e, addr: opts.Addr, log: log}
}

// テスト用
func (s *Server) Handler() http.Handler {
	return s.e
}

// Run は ctx が終わるまで待ち受け、終わったら graceful shutdown する。
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("server started", slog.String("addr", s.addr))
		if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("server is shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.e.Shutdown(sctx); err != nil {
			return fmt.Errorf("server failed shutdown gracefully: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.Any("err", v.Error))
			}
			log.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
