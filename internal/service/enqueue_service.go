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
	"fmt"

	"repolens/internal/model"
	"repolens/internal/model/query"
	"repolens/pkg/config"
	myerr "repolens/pkg/error"

	"go.uber.org/zap"
)

type EnqueueService struct {
	queue        JobSender
	lister       RepoLister
	serviceToken string
}

func NewEnqueueService(config *config.Config, queue JobSender, lister RepoLister) *EnqueueService {
	return &EnqueueService{
		queue:        queue,
		lister:       lister,
		serviceToken: config.Github.Token,
	}
}

// EnqueueBatch queues one open-source job per repository using the service credential.
func (s *EnqueueService) EnqueueBatch(ctx context.Context, repos []string) ([]string, error) {
	accepted := make([]string, 0, len(repos))
	for _, repo := range repos {
		job := &model.ProcessingJob{
			Repo:         repo,
			GithubToken:  s.serviceToken,
			IsOpenSource: true,
		}
		if err := s.queue.Send(ctx, job); err != nil {
			return accepted, fmt.Errorf("enqueue %s: %w", repo, err)
		}
		accepted = append(accepted, repo)
	}
	zap.S().Infof("queued %d repos for parsing", len(accepted))
	return accepted, nil
}

// EnqueueForUser queues one user-owned job for every repository the token's owner has, across all pages.
func (s *EnqueueService) EnqueueForUser(ctx context.Context, req *query.ProcessUserReq) ([]string, error) {
	if req.GithubToken == "" {
		return nil, myerr.InvalidParam("GitHub token is required")
	}
	user, err := s.lister.GetAuthenticatedUser(ctx, req.GithubToken)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve github user: %v", myerr.ErrUpstream, err)
	}
	repos, err := s.lister.ListOwnedRepos(ctx, req.GithubToken)
	if err != nil {
		return nil, fmt.Errorf("%w: list repos of %s: %v", myerr.ErrUpstream, user.Login, err)
	}
	accepted := make([]string, 0, len(repos))
	for _, repo := range repos {
		job := &model.ProcessingJob{
			Repo:        repo,
			GithubToken: req.GithubToken,
			Username:    user.Login,
			UserId:      req.UserId,
		}
		if err = s.queue.Send(ctx, job); err != nil {
			return accepted, fmt.Errorf("enqueue %s: %w", repo, err)
		}
		accepted = append(accepted, repo)
	}
	zap.S().Infof("queued %d repos of %s for user %d", len(accepted), user.Login, req.UserId)
	return accepted, nil
}
