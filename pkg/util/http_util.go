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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"repolens/pkg/common"
	"repolens/pkg/config"
	myerr "repolens/pkg/error"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

var (
	reqTimeout   = 30 * time.Second
	simpleClient *http.Client
	simpleOnce   sync.Once
)

// RetryPolicy is the upstream retry knob shared by every remote collaborator.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
	MaxDelay time.Duration
}

func NewRetryPolicy(c *config.Config) RetryPolicy {
	return RetryPolicy{
		Attempts: c.Retry.Attempts,
		Delay:    c.GetRetryDelay(),
		MaxDelay: c.GetRetryMaxDelay(),
	}
}

// Retry runs f with exponential backoff. Client errors (4xx) are returned immediately.
func Retry(ctx context.Context, policy RetryPolicy, f func() error) error {
	attempts := policy.Attempts
	if attempts == 0 {
		attempts = 1
	}
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(policy.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			zap.S().Warnf("retry #%d after err: %v", n+1, err)
		}),
	}
	if policy.MaxDelay > 0 {
		opts = append(opts, retry.MaxDelay(policy.MaxDelay))
	}
	return retry.Do(f, opts...)
}

func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, myerr.ErrUnexpectedResponse) || errors.Is(err, context.Canceled) {
		return false
	}
	code := myerr.StatusOf(err)
	if code >= 400 && code < 500 && code != http.StatusTooManyRequests {
		return false
	}
	return true
}

func RetryRequest(ctx context.Context, policy RetryPolicy, f func() (*common.Response, error)) (*common.Response, error) {
	var resp *common.Response
	err := Retry(ctx, policy, func() error {
		var err error
		resp, err = f()
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return myerr.NewAppendCode(resp.StatusCode, fmt.Sprintf("remote status %d", resp.StatusCode))
		}
		return nil
	})
	return resp, err
}

func NewHTTPClient() (*http.Client, error) {
	simpleOnce.Do(
		func() {
			simpleClient = &http.Client{
				Timeout: reqTimeout,
				Transport: &http.Transport{
					Proxy: http.ProxyFromEnvironment,
					DialContext: (&net.Dialer{
						Timeout:   30 * time.Second,
						KeepAlive: 30 * time.Second,
					}).DialContext,
					TLSHandshakeTimeout:   10 * time.Second,
					ResponseHeaderTimeout: 20 * time.Second,
					IdleConnTimeout:       90 * time.Second,
					MaxIdleConnsPerHost:   16,
				},
			}
		})
	return simpleClient, nil
}

func GetForDomain(ctx context.Context, domain, requestUri string, headers map[string]string) (*common.Response, error) {
	client, err := NewHTTPClient()
	if err != nil {
		return nil, fmt.Errorf("construct http client err: %v", err)
	}
	requestURL := fmt.Sprintf("%s%s", domain, requestUri)
	return doGet(ctx, client, requestURL, headers)
}

func doGet(ctx context.Context, client *http.Client, targetURL string, headers map[string]string) (*common.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create GET request err: %v", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := client.Do(req)
	if err != nil {
		zap.S().Warnf("request url fail: %s, err: %v", targetURL, err)
		return nil, fmt.Errorf("do GET request err: %w", err)
	}
	return readResponse(resp)
}

func PostForDomain(ctx context.Context, domain, requestUri string, contentType string, data []byte, headers map[string]string) (*common.Response, error) {
	client, err := NewHTTPClient()
	if err != nil {
		return nil, fmt.Errorf("construct http client err: %v", err)
	}
	requestURL := fmt.Sprintf("%s%s", domain, requestUri)
	return doPost(ctx, client, requestURL, contentType, data, headers)
}

func doPost(ctx context.Context, client *http.Client, targetURL string, contentType string, data []byte, headers map[string]string) (*common.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("create POST request err: %v", err)
	}

	req.Header.Set("Content-Type", contentType)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		zap.S().Warnf("request url fail: %s, err: %v", targetURL, err)
		return nil, fmt.Errorf("do POST request err: %w", err)
	}
	return readResponse(resp)
}

func readResponse(resp *http.Response) (*common.Response, error) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorf("close response body panic: %v", r)
		}
		resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body err: %v", err)
	}

	respHeaders := make(map[string]interface{})
	for key, values := range resp.Header {
		respHeaders[key] = values
	}

	return &common.Response{
		StatusCode: resp.StatusCode,
		Headers:    respHeaders,
		Body:       body,
	}, nil
}

func BearerHeaders(token string) map[string]string {
	m := make(map[string]string)
	if token != "" {
		m["Authorization"] = fmt.Sprintf("Bearer %s", token)
	}
	return m
}
