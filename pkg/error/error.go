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

package myerr

import (
	"errors"
	"net/http"
)

// Error carries the HTTP status the handler layer responds with.
type Error struct {
	code int
	msg  string
}

func (e Error) Error() string {
	return e.msg
}

func (e Error) StatusCode() int {
	return e.code
}

// Is matches on status code so errors.Is(err, ErrNotFound) works for any not-found message.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return t.code == e.code
}

func New(msg string) Error {
	return Error{code: http.StatusInternalServerError, msg: msg}
}

func NewAppendCode(code int, msg string) Error {
	return Error{code: code, msg: msg}
}

func InvalidParam(msg string) Error {
	return NewAppendCode(http.StatusBadRequest, msg)
}

func NotFound(msg string) Error {
	return NewAppendCode(http.StatusNotFound, msg)
}

var (
	ErrInvalidParam       = NewAppendCode(http.StatusBadRequest, "invalid parameter")
	ErrUnauthorized       = NewAppendCode(http.StatusUnauthorized, "Unauthorized")
	ErrNotFound           = NewAppendCode(http.StatusNotFound, "not found")
	ErrUpstream           = NewAppendCode(http.StatusInternalServerError, "upstream request failed")
	ErrUnexpectedResponse = errors.New("unexpected response shape")
	ErrEmptyReadme        = errors.New("readme content is empty")
)

// StatusOf returns the status code carried by err, 500 for anything else.
func StatusOf(err error) int {
	var e Error
	if errors.As(err, &e) {
		return e.code
	}
	return http.StatusInternalServerError
}
