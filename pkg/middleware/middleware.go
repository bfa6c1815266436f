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

package middleware

import (
	"crypto/subtle"
	"strconv"
	"strings"

	"repolens/pkg/prom"
	"repolens/pkg/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// SharedSecretAuth rejects any request whose Authorization header is not exactly "Bearer <secret>".
func SharedSecretAuth(secret string) echo.MiddlewareFunc {
	expected := []byte(bearerPrefix + secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if secret == "" || !strings.HasPrefix(header, bearerPrefix) ||
				subtle.ConstantTimeCompare([]byte(header), expected) != 1 {
				zap.S().Warnf("unauthorized %s %s from %s", c.Request().Method, c.Request().URL.Path, c.RealIP())
				return util.ErrorUnauthorized(c)
			}
			return next(c)
		}
	}
}

func RequestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		prom.HttpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		return err
	}
}
