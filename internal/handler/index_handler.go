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
	"repolens/internal/service"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
)

type IndexHandler struct {
	indexService *service.IndexService
}

func NewIndexHandler(indexService *service.IndexService) *IndexHandler {
	return &IndexHandler{
		indexService: indexService,
	}
}

func (handler *IndexHandler) DescribeHandler(c echo.Context) error {
	stats, err := handler.indexService.Describe(c.Request().Context())
	if err != nil {
		return util.ResponseError(c, err)
	}
	return util.NormalResponseData(c, stats)
}

func (handler *IndexHandler) ProbeQueryHandler(c echo.Context) error {
	resp, err := handler.indexService.ProbeQuery(c.Request().Context())
	if err != nil {
		return util.ResponseError(c, err)
	}
	return util.NormalResponseData(c, resp)
}
