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

	"repolens/internal/data"
	"repolens/internal/model"

	"gorm.io/gorm"
)

type UserDao struct {
	baseData *data.BaseData
}

func NewUserDao(data *data.BaseData) *UserDao {
	return &UserDao{
		baseData: data,
	}
}

func (u *UserDao) List(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0)
	if err := u.baseData.BizDB.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetById returns nil, nil when the user does not exist.
func (u *UserDao) GetById(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := u.baseData.BizDB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserDao) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := u.baseData.BizDB.WithContext(ctx).Where("username = ?", username).Order("id").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserDao) Insert(ctx context.Context, user *model.User) error {
	return u.baseData.BizDB.WithContext(ctx).Create(user).Error
}

func (u *UserDao) UpdateToken(ctx context.Context, id int64, token string) error {
	return u.baseData.BizDB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("github_token", token).Error
}
