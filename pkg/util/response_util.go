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

package util

import (
	"net/http"

	myerr "repolens/pkg/error"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ErrorBody struct {
	Error string `json:"error"`
}

func NormalResponseData(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func CreatedResponseData(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func ErrorEntryUnknown(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorBody{Error: msg})
}

func ErrorRequestParam(c echo.Context, msg ...string) error {
	m := "invalid request parameter"
	if len(msg) > 0 && msg[0] != "" {
		m = msg[0]
	}
	return c.JSON(http.StatusBadRequest, ErrorBody{Error: m})
}

func ErrorUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorBody{Error: "Unauthorized"})
}

func ErrorPageNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorBody{Error: "page not found"})
}

// ResponseError maps a myerr.Error to its status; anything else is a 500.
func ResponseError(c echo.Context, errs ...error) error {
	if len(errs) == 0 || errs[0] == nil {
		return c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
	}
	err := errs[0]
	code := myerr.StatusOf(err)
	if code >= http.StatusInternalServerError {
		zap.S().Errorf("%s %s err: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return ErrorEntryUnknown(c, code, err.Error())
}
