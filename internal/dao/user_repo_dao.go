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

	"repolens/internal/data"
	"repolens/internal/model"
	"repolens/internal/model/query"

	"gorm.io/gorm/clause"
)

type UserRepoDao struct {
	baseData *data.BaseData
}

func NewUserRepoDao(data *data.BaseData) *UserRepoDao {
	return &UserRepoDao{
		baseData: data,
	}
}

func (r *UserRepoDao) Exists(ctx context.Context, userId int64, repo string) (bool, error) {
	var count int64
	err := r.baseData.BizDB.WithContext(ctx).Model(&model.UserRepo{}).
		Where("user_id = ? and repo = ?", userId, repo).Count(&count).Error
	return count > 0, err
}

// Insert is a no-op when the (user_id, repo) pair already exists.
func (r *UserRepoDao) Insert(ctx context.Context, userId int64, repo string) error {
	return r.baseData.BizDB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRepo{UserID: userId, Repo: repo}).Error
}

// EnsureAssociation checks first so the common already-linked path costs a read only.
func (r *UserRepoDao) EnsureAssociation(ctx context.Context, userId int64, repo string) (bool, error) {
	exists, err := r.Exists(ctx, userId, repo)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err = r.Insert(ctx, userId, repo); err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepoDao) List(ctx context.Context, q *query.UserRepoQuery) ([]*model.UserRepo, error) {
	rows := make([]*model.UserRepo, 0)
	db := r.baseData.BizDB.WithContext(ctx).Model(&model.UserRepo{}).Where("user_id = ?", q.UserId)
	if q.Repo != "" {
		db = db.Where("repo = ?", q.Repo)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
