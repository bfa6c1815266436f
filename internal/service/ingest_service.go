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
	"errors"
	"fmt"
	"net/http"
	"time"

	"repolens/internal/model"
	"repolens/pkg/config"
	"repolens/pkg/consts"
	myerr "repolens/pkg/error"
	"repolens/pkg/prom"
	"repolens/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errAbort = errors.New("job aborted")

type IngestService struct {
	users        UserStore
	userRepos    UserRepoStore
	cache        ProcessedCache
	index        VectorIndex
	fetcher      MetadataFetcher
	summarizer   Summarizer
	embedder     Embedder
	locker       RepoLocker
	serviceToken string
	jobTimeout   time.Duration
}

func NewIngestService(config *config.Config, users UserStore, userRepos UserRepoStore, cache ProcessedCache,
	index VectorIndex, fetcher MetadataFetcher, summarizer Summarizer, embedder Embedder, locker RepoLocker) *IngestService {
	return &IngestService{
		users:        users,
		userRepos:    userRepos,
		cache:        cache,
		index:        index,
		fetcher:      fetcher,
		summarizer:   summarizer,
		embedder:     embedder,
		locker:       locker,
		serviceToken: config.Github.Token,
		jobTimeout:   config.GetJobTimeout(),
	}
}

// ProcessBatch runs every job of the batch concurrently. A failing job never affects its siblings.
func (s *IngestService) ProcessBatch(ctx context.Context, jobs []*model.ProcessingJob) {
	var eg errgroup.Group
	for _, job := range jobs {
		job := job
		eg.Go(func() error {
			s.Process(ctx, job)
			return nil
		})
	}
	_ = eg.Wait()
}

// Process runs one job to completion and returns its outcome. Failures are logged, never returned;
// writes already made stay in place.
func (s *IngestService) Process(ctx context.Context, job *model.ProcessingJob) (result string) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorf("process %s panic: %v", job.Repo, r)
			result = consts.JobResultFailed
		}
		prom.JobsTotal.WithLabelValues(job.Variant(), result).Inc()
		prom.JobDuration.WithLabelValues(job.Variant()).Observe(time.Since(start).Seconds())
	}()

	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	result, err := s.process(ctx, job)
	switch {
	case errors.Is(err, errAbort):
		zap.S().Warnf("job %s (user %d) aborted: %v", job.Repo, job.UserId, err)
	case err != nil:
		zap.S().Errorf("job %s (user %d) failed: %v", job.Repo, job.UserId, err)
	default:
		zap.S().Infof("job %s (user %d) %s", job.Repo, job.UserId, result)
	}
	return result
}

func (s *IngestService) process(ctx context.Context, job *model.ProcessingJob) (string, error) {
	owner, repoName, ok := util.SplitOrgRepo(job.Repo)
	if !ok {
		return consts.JobResultAborted, fmt.Errorf("%w: malformed repo name %q", errAbort, job.Repo)
	}
	if !job.IsOpenSource {
		if job.UserId <= 0 || job.Username == "" {
			return consts.JobResultAborted, fmt.Errorf("%w: user-owned job without userId or username", errAbort)
		}
		user, err := s.users.GetById(ctx, job.UserId)
		if err != nil {
			return consts.JobResultFailed, fmt.Errorf("lookup user %d: %w", job.UserId, err)
		}
		if user == nil {
			return consts.JobResultAborted, fmt.Errorf("%w: user %d does not exist", errAbort, job.UserId)
		}
	}

	lock := s.locker.GetRepoLock(job.Repo)
	lock.Lock()
	defer lock.Unlock()

	key := util.GetProcessedKey(job.Repo)
	_, found, err := s.cache.Get(ctx, key)
	if err != nil {
		return consts.JobResultFailed, fmt.Errorf("probe cache %s: %w", key, err)
	}
	if found {
		prom.CacheProbes.WithLabelValues(consts.CacheProbeHit).Inc()
		if !job.IsOpenSource {
			if _, err = s.userRepos.EnsureAssociation(ctx, job.UserId, job.Repo); err != nil {
				return consts.JobResultFailed, fmt.Errorf("associate %s with user %d: %w", job.Repo, job.UserId, err)
			}
		}
		return consts.JobResultSkipped, nil
	}
	prom.CacheProbes.WithLabelValues(consts.CacheProbeMiss).Inc()

	token := job.GithubToken
	if token == "" {
		token = s.serviceToken
	}
	vector, err := s.buildVector(ctx, token, owner, repoName, job.Username)
	if err != nil {
		if errors.Is(err, myerr.ErrEmptyReadme) {
			return consts.JobResultAborted, fmt.Errorf("%w: %v", errAbort, err)
		}
		return consts.JobResultFailed, err
	}

	if _, err = s.index.Upsert(ctx, []*model.Vector{vector}); err != nil {
		return consts.JobResultFailed, fmt.Errorf("upsert vector %s: %w", job.Repo, err)
	}
	if err = s.cache.Put(ctx, key, vector); err != nil {
		return consts.JobResultFailed, fmt.Errorf("write cache %s: %w", key, err)
	}
	if !job.IsOpenSource {
		if _, err = s.userRepos.EnsureAssociation(ctx, job.UserId, job.Repo); err != nil {
			return consts.JobResultFailed, fmt.Errorf("associate %s with user %d: %w", job.Repo, job.UserId, err)
		}
	}
	return consts.JobResultDone, nil
}

// Parse computes the vector of repo and upserts it straight into the index, bypassing the cache gate.
func (s *IngestService) Parse(ctx context.Context, repo string) (*model.UpsertResult, error) {
	owner, repoName, ok := util.SplitOrgRepo(repo)
	if !ok {
		return nil, myerr.InvalidParam("repo must be in owner/repo form")
	}
	vector, err := s.buildVector(ctx, s.serviceToken, owner, repoName, "")
	if err != nil {
		if errors.Is(err, myerr.ErrEmptyReadme) {
			return nil, myerr.NewAppendCode(http.StatusUnprocessableEntity, err.Error())
		}
		return nil, fmt.Errorf("%w: %v", myerr.ErrUpstream, err)
	}
	result, err := s.index.Upsert(ctx, []*model.Vector{vector})
	if err != nil {
		return nil, fmt.Errorf("%w: upsert vector %s: %v", myerr.ErrUpstream, repo, err)
	}
	return result, nil
}

// buildVector fetches metadata, summarizes it and embeds the summary.
func (s *IngestService) buildVector(ctx context.Context, token, owner, repoName, username string) (*model.Vector, error) {
	fullName := util.GetOrgRepo(owner, repoName)
	readme, err := s.fetcher.GetReadme(ctx, token, owner, repoName)
	if err != nil {
		return nil, fmt.Errorf("fetch readme %s: %w", fullName, err)
	}
	if readme == "" {
		return nil, fmt.Errorf("%s: %w", fullName, myerr.ErrEmptyReadme)
	}
	languages, err := s.fetcher.ListLanguages(ctx, token, owner, repoName)
	if err != nil {
		return nil, fmt.Errorf("list languages %s: %w", fullName, err)
	}
	summary, err := s.summarizer.Summarize(ctx, readme, languages)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", fullName, err)
	}
	values, err := s.embedder.Embed(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", fullName, err)
	}
	if dim := s.index.Dimension(); dim > 0 && len(values) != dim {
		return nil, fmt.Errorf("embed %s: %w: got %d dimensions, index expects %d",
			fullName, myerr.ErrUnexpectedResponse, len(values), dim)
	}
	return &model.Vector{
		ID:     fullName,
		Values: values,
		Metadata: model.VectorMetadata{
			Repo:     fullName,
			RepoName: repoName,
			Owner:    owner,
			Username: username,
			Summary:  summary,
		},
	}, nil
}
