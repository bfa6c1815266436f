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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"repolens/internal/dao"
	"repolens/internal/server"
	"repolens/pkg/app"
	"repolens/pkg/config"
	"repolens/pkg/consts"
	"repolens/pkg/logger"

	"go.uber.org/zap"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "./config/config.yaml", "配置文件路径")
}

func newApp(qdrantDao *dao.QdrantDao, httpServer *server.HTTPServer, workerServer *server.WorkerServer,
	schedulerServer *server.SchedulerServer) (*app.App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := qdrantDao.EnsureCollection(ctx); err != nil {
		return nil, err
	}
	return app.New(consts.AppName, consts.AppVersion, httpServer, workerServer, schedulerServer), nil
}

func main() {
	flag.Parse()

	conf, err := config.Scan(configPath)
	if err != nil {
		fmt.Printf("读取配置文件失败: %v, 路径: %s\n", err, configPath)
		os.Exit(1)
	}
	log := logger.InitLogger(conf)
	defer log.Sync()

	a, cleanup, err := wireApp(conf)
	if err != nil {
		zap.S().Fatalf("init app err: %v", err)
	}
	defer cleanup()

	zap.S().Infof("%s %s starting, id %s", a.Name(), a.Version(), a.ID())
	if err = a.Run(); err != nil {
		zap.S().Errorf("app run err: %v", err)
	}
}
