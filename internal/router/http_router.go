//  Copyright (c) 2025 dingodb.com, Inc. All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http:www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package router

import (
	"repolens/internal/handler"
	"repolens/pkg/config"
	"repolens/pkg/middleware"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HttpRouter struct {
	echo             *echo.Echo
	config           *config.Config
	sysHandler       *handler.SysHandler
	repoHandler      *handler.RepoHandler
	userHandler      *handler.UserHandler
	indexHandler     *handler.IndexHandler
	recommendHandler *handler.RecommendHandler
}

func NewHttpRouter(echo *echo.Echo, config *config.Config, sysHandler *handler.SysHandler, repoHandler *handler.RepoHandler,
	userHandler *handler.UserHandler, indexHandler *handler.IndexHandler, recommendHandler *handler.RecommendHandler) *HttpRouter {
	r := &HttpRouter{
		echo:             echo,
		config:           config,
		sysHandler:       sysHandler,
		repoHandler:      repoHandler,
		userHandler:      userHandler,
		indexHandler:     indexHandler,
		recommendHandler: recommendHandler,
	}
	r.initRouter()
	return r
}

func (r *HttpRouter) GetHandler() *echo.Echo {
	return r.echo
}

func (r *HttpRouter) initRouter() {
	// 系统信息
	r.echo.GET("/info", r.sysHandler.Info)
	r.echo.GET("/healthz", r.sysHandler.Healthz)
	if r.config.EnableMetric() {
		r.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
	r.echo.RouteNotFound("/*", util.ErrorPageNotFound)

	api := r.echo.Group("/api/v1", middleware.SharedSecretAuth(r.config.Server.AppSecret))
	r.repoRouter(api)
	r.userRouter(api)
	r.indexRouter(api)
}

func (r *HttpRouter) repoRouter(g *echo.Group) {
	g.POST("/repos/batch", r.repoHandler.EnqueueBatchHandler)       // 开源仓库批量入队
	g.POST("/repos/process-user", r.repoHandler.ProcessUserHandler) // 用户仓库全量入队
	g.POST("/repos/parse", r.repoHandler.ParseHandler)              // 同步解析
}

func (r *HttpRouter) userRouter(g *echo.Group) {
	g.GET("/users", r.userHandler.ListUsersHandler)
	g.POST("/users", r.userHandler.CreateUserHandler)
	g.GET("/users/:userId/repos", r.userHandler.UserReposHandler)
	g.GET("/users/:userId/recommendations", r.recommendHandler.RecommendHandler)
	g.GET("/user-recommendations/:userId", r.recommendHandler.RecommendHandler)
}

func (r *HttpRouter) indexRouter(g *echo.Group) {
	g.GET("/index/describe", r.indexHandler.DescribeHandler)
	g.GET("/index/query", r.indexHandler.ProbeQueryHandler)
}
