//go:build wireinject
// +build wireinject

package main

import (
	"repolens/internal/dao"
	"repolens/internal/data"
	"repolens/internal/handler"
	"repolens/internal/queue"
	"repolens/internal/remote"
	"repolens/internal/router"
	"repolens/internal/server"
	"repolens/internal/service"
	"repolens/pkg/app"
	"repolens/pkg/config"

	"github.com/google/wire"
)

func wireApp(*config.Config) (*app.App, func(), error) {
	panic(wire.Build(
		data.BaseDataProvider,
		dao.DaoProvider,
		remote.RemoteProvider,
		queue.QueueProvider,
		service.ServiceProvider,
		handler.HandlerProvider,
		router.RouterProvider,
		server.ServerProvider,
		newApp,
	))
}
