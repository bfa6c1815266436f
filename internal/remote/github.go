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

package remote

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"repolens/pkg/common"
	"repolens/pkg/config"
	"repolens/pkg/consts"
	myerr "repolens/pkg/error"
	"repolens/pkg/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const githubApiVersion = "2022-11-28"

type GithubUser struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type githubReadme struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type githubRepo struct {
	FullName string `json:"full_name"`
}

// GithubClient talks to the GitHub REST API. Every call carries the caller's token.
type GithubClient struct {
	apiBase string
	perPage int
	policy  util.RetryPolicy
}

func NewGithubClient(config *config.Config) *GithubClient {
	return &GithubClient{
		apiBase: strings.TrimRight(config.Github.ApiBase, "/"),
		perPage: config.Github.PerPage,
		policy:  util.NewRetryPolicy(config),
	}
}

// GetReadme returns the decoded README. A repository without a README yields an empty string.
func (g *GithubClient) GetReadme(ctx context.Context, token, owner, repo string) (string, error) {
	uri := fmt.Sprintf("/repos/%s/%s/readme", url.PathEscape(owner), url.PathEscape(repo))
	resp, err := g.get(ctx, token, uri)
	if err != nil {
		if myerr.StatusOf(err) == http.StatusNotFound {
			zap.S().Infof("%s/%s has no readme", owner, repo)
			return "", nil
		}
		return "", err
	}
	var readme githubReadme
	if err = sonic.Unmarshal(resp.Body, &readme); err != nil {
		return "", fmt.Errorf("decode readme of %s/%s: %w", owner, repo, err)
	}
	if readme.Encoding != "" && readme.Encoding != "base64" {
		return readme.Content, nil
	}
	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(readme.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode readme content of %s/%s: %w", owner, repo, err)
	}
	return string(content), nil
}

// ListLanguages returns the repository languages ordered by byte count, largest first.
func (g *GithubClient) ListLanguages(ctx context.Context, token, owner, repo string) ([]string, error) {
	uri := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(repo))
	resp, err := g.get(ctx, token, uri)
	if err != nil {
		return nil, err
	}
	bytesByLang := make(map[string]int64)
	if err = sonic.Unmarshal(resp.Body, &bytesByLang); err != nil {
		return nil, fmt.Errorf("decode languages of %s/%s: %w", owner, repo, err)
	}
	languages := make([]string, 0, len(bytesByLang))
	for lang := range bytesByLang {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool {
		if bytesByLang[languages[i]] != bytesByLang[languages[j]] {
			return bytesByLang[languages[i]] > bytesByLang[languages[j]]
		}
		return languages[i] < languages[j]
	})
	return languages, nil
}

func (g *GithubClient) GetAuthenticatedUser(ctx context.Context, token string) (*GithubUser, error) {
	resp, err := g.get(ctx, token, "/user")
	if err != nil {
		return nil, err
	}
	var user GithubUser
	if err = sonic.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("decode github user: %w", err)
	}
	return &user, nil
}

// ListOwnedRepos follows every page of the authenticated user's owned repositories.
func (g *GithubClient) ListOwnedRepos(ctx context.Context, token string) ([]string, error) {
	perPage := g.perPage
	if perPage <= 0 {
		perPage = 100
	}
	repos := make([]string, 0)
	for page := 1; ; page++ {
		uri := fmt.Sprintf("/user/repos?affiliation=owner&sort=full_name&per_page=%d&page=%d", perPage, page)
		resp, err := g.get(ctx, token, uri)
		if err != nil {
			return nil, err
		}
		var pageRepos []githubRepo
		if err = sonic.Unmarshal(resp.Body, &pageRepos); err != nil {
			return nil, fmt.Errorf("decode repos page %d: %w", page, err)
		}
		for _, r := range pageRepos {
			repos = append(repos, r.FullName)
		}
		if len(pageRepos) < perPage {
			break
		}
	}
	return repos, nil
}

func (g *GithubClient) get(ctx context.Context, token, uri string) (*common.Response, error) {
	headers := util.BearerHeaders(token)
	headers["Accept"] = consts.GithubAcceptHeader
	headers["X-GitHub-Api-Version"] = githubApiVersion
	resp, err := util.RetryRequest(ctx, g.policy, func() (*common.Response, error) {
		return util.GetForDomain(ctx, g.apiBase, uri, headers)
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, myerr.NewAppendCode(resp.StatusCode, fmt.Sprintf("github %s: status %d", strings.SplitN(uri, "?", 2)[0], resp.StatusCode))
	}
	return resp, nil
}
