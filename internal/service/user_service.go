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

	"repolens/internal/model"
	"repolens/internal/model/dto"
	"repolens/internal/model/query"
	myerr "repolens/pkg/error"
	"repolens/pkg/util"

	"github.com/young2j/gocopy"
	"go.uber.org/zap"
)

type UserService struct {
	users     UserStore
	userRepos UserRepoStore
}

func NewUserService(users UserStore, userRepos UserRepoStore) *UserService {
	return &UserService{
		users:     users,
		userRepos: userRepos,
	}
}

func (s *UserService) List(ctx context.Context) ([]*dto.UserResp, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResps(users), nil
}

// Create returns the existing user when username is taken, created reports whether a row was inserted.
func (s *UserService) Create(ctx context.Context, req *query.CreateUserReq) (resp *dto.UserResp, created bool, err error) {
	exist, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, false, err
	}
	if exist != nil {
		return toUserResp(exist), false, nil
	}
	user := &model.User{
		Username:    req.Username,
		GithubToken: req.GithubToken,
		GithubID:    req.GithubId,
		Email:       req.Email,
	}
	if err = s.users.Insert(ctx, user); err != nil {
		return nil, false, err
	}
	zap.S().Infof("user %s created, id %d", user.Username, user.ID)
	return toUserResp(user), true, nil
}

func (s *UserService) ListRepos(ctx context.Context, userId int64) ([]string, error) {
	user, err := s.users.GetById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, myerr.NotFound("user not found")
	}
	rows, err := s.userRepos.List(ctx, &query.UserRepoQuery{UserId: userId})
	if err != nil {
		return nil, err
	}
	repos := make([]string, len(rows))
	for i, row := range rows {
		repos[i] = row.Repo
	}
	return repos, nil
}

func toUserResps(users []*model.User) []*dto.UserResp {
	resps := make([]*dto.UserResp, 0, len(users))
	for _, u := range users {
		resps = append(resps, toUserResp(u))
	}
	return resps
}

func toUserResp(user *model.User) *dto.UserResp {
	resp := &dto.UserResp{}
	gocopy.Copy(resp, user)
	resp.CreateTime = util.TimeToUnix(user.CreatedAt)
	return resp
}
