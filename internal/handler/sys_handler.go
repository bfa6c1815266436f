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
	"repolens/internal/model"
	"repolens/internal/queue"
	"repolens/pkg/app"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
)

type SysHandler struct {
	jobQueue *queue.JobQueue
}

func NewSysHandler(jobQueue *queue.JobQueue) *SysHandler {
	return &SysHandler{
		jobQueue: jobQueue,
	}
}

func (s *SysHandler) Info(c echo.Context) error {
	info := &model.SystemInfo{}
	if appInfo, ok := app.FromContext(c.Request().Context()); ok {
		info.Id = appInfo.ID()
		info.Name = appInfo.Name()
		info.Version = appInfo.Version()
		info.StartTime = util.TimeFormat(appInfo.StartTime())
	}
	return util.NormalResponseData(c, info)
}

func (s *SysHandler) Healthz(c echo.Context) error {
	return util.NormalResponseData(c, map[string]interface{}{
		"status":     "ok",
		"queueDepth": s.jobQueue.Len(),
	})
}
