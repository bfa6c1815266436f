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
	"repolens/internal/model/dto"
	"repolens/internal/model/query"
	"repolens/internal/service"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
)

type RepoHandler struct {
	enqueueService *service.EnqueueService
	ingestService  *service.IngestService
}

func NewRepoHandler(enqueueService *service.EnqueueService, ingestService *service.IngestService) *RepoHandler {
	return &RepoHandler{
		enqueueService: enqueueService,
		ingestService:  ingestService,
	}
}

func (handler *RepoHandler) EnqueueBatchHandler(c echo.Context) error {
	req := new(query.BatchParseReq)
	if err := c.Bind(req); err != nil {
		return util.ErrorRequestParam(c, "Array of repository names is required")
	}
	if err := c.Validate(req); err != nil {
		return util.ErrorRequestParam(c, "Array of owner/repo names is required")
	}
	repos, err := handler.enqueueService.EnqueueBatch(c.Request().Context(), req.Repos)
	if err != nil {
		return util.ResponseError(c, err)
	}
	return util.NormalResponseData(c, dto.EnqueueResp{Success: true, ProcessedRepos: repos})
}

func (handler *RepoHandler) ProcessUserHandler(c echo.Context) error {
	req := new(query.ProcessUserReq)
	if err := c.Bind(req); err != nil {
		return util.ErrorRequestParam(c)
	}
	if req.GithubToken == "" {
		return util.ErrorRequestParam(c, "GitHub token is required")
	}
	if err := c.Validate(req); err != nil {
		return util.ErrorRequestParam(c, "userId must be a positive integer")
	}
	repos, err := handler.enqueueService.EnqueueForUser(c.Request().Context(), req)
	if err != nil {
		return util.ResponseError(c, err)
	}
	return util.NormalResponseData(c, dto.EnqueueResp{Success: true, ProcessedRepos: repos})
}

func (handler *RepoHandler) ParseHandler(c echo.Context) error {
	req := new(query.ParseReq)
	if err := c.Bind(req); err != nil {
		return util.ErrorRequestParam(c, "Repository name is required")
	}
	if err := c.Validate(req); err != nil {
		return util.ErrorRequestParam(c, "Repository name in owner/repo form is required")
	}
	result, err := handler.ingestService.Parse(c.Request().Context(), req.Repo)
	if err != nil {
		return util.ResponseError(c, err)
	}
	return util.NormalResponseData(c, result)
}
