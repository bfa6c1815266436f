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

package service

import (
	"context"

	"repolens/pkg/config"

	"go.uber.org/zap"
)

// CatalogService re-enqueues the configured open-source catalog.
type CatalogService struct {
	enqueueService *EnqueueService
	repos          []string
}

func NewCatalogService(config *config.Config, enqueueService *EnqueueService) *CatalogService {
	return &CatalogService{
		enqueueService: enqueueService,
		repos:          config.Scheduler.Catalog.Repos,
	}
}

func (s *CatalogService) Refresh(ctx context.Context) error {
	if len(s.repos) == 0 {
		zap.S().Debug("catalog is empty, nothing to refresh")
		return nil
	}
	accepted, err := s.enqueueService.EnqueueBatch(ctx, s.repos)
	if err != nil {
		zap.S().Errorf("catalog refresh queued %d of %d repos: %v", len(accepted), len(s.repos), err)
		return err
	}
	zap.S().Infof("catalog refresh queued %d repos", len(accepted))
	return nil
}
