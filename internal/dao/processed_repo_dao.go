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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repolens/internal/data"
	"repolens/internal/model"
	"repolens/pkg/config"
	"repolens/pkg/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProcessedRepoDao is the processed-set cache: go-cache in front of the processed_repo table.
// A present, unexpired key means the repository's vector has been computed and upserted.
type ProcessedRepoDao struct {
	baseData         *data.BaseData
	ttl              time.Duration
	memoryExpiration time.Duration
	now              func() time.Time
}

func NewProcessedRepoDao(data *data.BaseData, config *config.Config) *ProcessedRepoDao {
	return &ProcessedRepoDao{
		baseData:         data,
		ttl:              config.GetProcessedTTL(),
		memoryExpiration: config.GetDefaultExpiration(),
		now:              time.Now,
	}
}

// Get returns the cached vector for key; ok is false when absent or expired.
func (p *ProcessedRepoDao) Get(ctx context.Context, key string) (*model.Vector, bool, error) {
	memKey := util.GetProcessedCacheKey(key)
	if v, ok := p.baseData.Cache.Get(memKey); ok {
		return v.(*model.Vector), true, nil
	}
	var row model.ProcessedRepo
	if err := p.baseData.BizDB.WithContext(ctx).Where("cache_key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	now := p.now()
	if row.Expired(now) {
		zap.S().Debugf("processed entry %s expired at %v", key, row.ExpiresAt)
		return nil, false, nil
	}
	var vector model.Vector
	if err := sonic.UnmarshalString(row.Value, &vector); err != nil {
		return nil, false, fmt.Errorf("decode processed entry %s: %w", key, err)
	}
	p.baseData.Cache.Set(memKey, &vector, p.memoryTTL(row.ExpiresAt, now))
	return &vector, true, nil
}

func (p *ProcessedRepoDao) Put(ctx context.Context, key string, vector *model.Vector) error {
	value, err := sonic.MarshalString(vector)
	if err != nil {
		return err
	}
	metadata, err := sonic.MarshalString(vector.Metadata)
	if err != nil {
		return err
	}
	now := p.now()
	row := &model.ProcessedRepo{
		CacheKey: key,
		Value:    value,
		Metadata: metadata,
	}
	if p.ttl > 0 {
		expiresAt := now.Add(p.ttl)
		row.ExpiresAt = &expiresAt
	}
	err = p.baseData.BizDB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "metadata", "expires_at", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return err
	}
	p.baseData.Cache.Set(util.GetProcessedCacheKey(key), vector, p.memoryTTL(row.ExpiresAt, now))
	return nil
}

func (p *ProcessedRepoDao) memoryTTL(expiresAt *time.Time, now time.Time) time.Duration {
	if expiresAt == nil {
		return p.memoryExpiration
	}
	remaining := expiresAt.Sub(now)
	if remaining < p.memoryExpiration {
		return remaining
	}
	return p.memoryExpiration
}
