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

package server

import (
	"context"
	"time"

	"repolens/internal/service"
	"repolens/pkg/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SchedulerServer drives the periodic catalog refresh.
type SchedulerServer struct {
	cron           *cron.Cron
	enabled        bool
	spec           string
	catalogService *service.CatalogService
}

func NewSchedulerServer(config *config.Config, catalogService *service.CatalogService) *SchedulerServer {
	return &SchedulerServer{
		cron:           cron.New(cron.WithSeconds()),
		enabled:        config.GetEnableCatalog(),
		spec:           config.GetCatalogCron(),
		catalogService: catalogService,
	}
}

func (s *SchedulerServer) Start(ctx context.Context) error {
	if !s.enabled {
		zap.S().Infof("[CRON] catalog refresh disabled")
		<-ctx.Done()
		return nil
	}
	_, err := s.cron.AddFunc(s.spec, func() {
		refreshCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if err := s.catalogService.Refresh(refreshCtx); err != nil {
			zap.S().Errorf("cron exec catalog refresh err: %v", err)
		}
	})
	if err != nil {
		zap.S().Errorf("add catalog refresh job fail: %v", err)
		return err
	}
	s.cron.Start()
	zap.S().Infof("[CRON] catalog refresh scheduled: %s", s.spec)
	<-ctx.Done()
	return nil
}

func (s *SchedulerServer) Stop(ctx context.Context) error {
	zap.S().Infof("[CRON] scheduler shutdown.")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	return nil
}
