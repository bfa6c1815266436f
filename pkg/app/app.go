package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server is anything the App starts and stops with the process.
type Server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type Info interface {
	ID() string
	Name() string
	Version() string
	StartTime() time.Time
}

type App struct {
	id          string
	name        string
	version     string
	startTime   time.Time
	stopTimeout time.Duration
	servers     []Server
	ctx         context.Context
	cancel      context.CancelFunc
}

type appKey struct{}

func New(name, version string, servers ...Server) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		id:          uuid.NewString(),
		name:        name,
		version:     version,
		startTime:   time.Now(),
		stopTimeout: 15 * time.Second,
		servers:     servers,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (a *App) ID() string           { return a.id }
func (a *App) Name() string         { return a.name }
func (a *App) Version() string      { return a.version }
func (a *App) StartTime() time.Time { return a.startTime }

func NewContext(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, appKey{}, info)
}

func FromContext(ctx context.Context) (Info, bool) {
	info, ok := ctx.Value(appKey{}).(Info)
	return info, ok
}

// Run starts every server and blocks until a signal arrives or a server fails.
func (a *App) Run() error {
	ctx := NewContext(a.ctx, a)
	eg, ctx := errgroup.WithContext(ctx)
	for _, srv := range a.servers {
		srv := srv
		eg.Go(func() error {
			<-ctx.Done()
			stopCtx, cancel := context.WithTimeout(NewContext(context.Background(), a), a.stopTimeout)
			defer cancel()
			return srv.Stop(stopCtx)
		})
		eg.Go(func() error {
			return srv.Start(ctx)
		})
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	eg.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-quit:
			zap.S().Infof("receive signal %v, shutting down", sig)
			a.cancel()
			return nil
		}
	})
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) Stop() {
	a.cancel()
}
