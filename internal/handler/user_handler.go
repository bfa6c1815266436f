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

package handler

import (
	"repolens/internal/model/query"
	"repolens/internal/service"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (handler *UserHandler) ListUsersHandler(c echo.Context) error {
	users, err := handler.userService.List(c.Request().Context())
	if err != nil {
		return util.ResponseError(c, err)
	}
	return util.NormalResponseData(c, users)
}

func (handler *UserHandler) CreateUserHandler(c echo.Context) error {
	req := new(query.CreateUserReq)
	if err := c.Bind(req); err != nil {
		return util.ErrorRequestParam(c)
	}
	if err := c.Validate(req); err != nil {
		return util.ErrorRequestParam(c, err.Error())
	}
	user, created, err := handler.userService.Create(c.Request().Context(), req)
	if err != nil {
		return util.ResponseError(c, err)
	}
	if created {
		return util.CreatedResponseData(c, user)
	}
	return util.NormalResponseData(c, user)
}

func (handler *UserHandler) UserReposHandler(c echo.Context) error {
	userId, err := service.ParseUserId(c.Param("userId"))
	if err != nil {
		return util.ResponseError(c, err)
	}
	repos, err := handler.userService.ListRepos(c.Request().Context(), userId)
	if err != nil {
		return util.ResponseError(c, err)
	}
	return util.NormalResponseData(c, repos)
}
