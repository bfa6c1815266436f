package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"repolens/internal/router"
	"repolens/pkg/config"
	"repolens/pkg/middleware"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type HTTPServer struct {
	*http.Server
	lis     net.Listener
	network string
	address string
	http    *router.HttpRouter
}

func NewHTTPServer(config *config.Config, httpRouter *router.HttpRouter) *HTTPServer {
	s := &HTTPServer{
		network: "tcp",
		address: fmt.Sprintf("%s:%d", config.GetHost(), config.Server.Port),
		http:    httpRouter,
	}
	s.Server = &http.Server{
		Handler:           s.http.GetHandler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      0, // 同步解析耗时不定，不设置写超时
		MaxHeaderBytes:    1 << 20,
	}
	return s
}

func (s *HTTPServer) Start(ctx context.Context) error {
	lis, err := net.Listen(s.network, s.address)
	if err != nil {
		return err
	}
	s.lis = lis
	s.BaseContext = func(net.Listener) context.Context {
		return ctx
	}
	zap.S().Infof("[HTTP] server listening on: %s", s.lis.Addr().String())
	if err := s.Serve(s.lis); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	zap.S().Infof("[HTTP] server shutdown.")
	return s.Shutdown(ctx)
}

func NewEngine(config *config.Config) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.Debug = !config.IsRelease()
	r.Validator = util.NewRequestValidator()
	r.JSONSerializer = util.SonicSerializer{}
	r.Use(echomw.Recover())
	r.Use(middleware.RequestMetrics)
	return r
}
