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
	"sort"
	"strconv"

	"repolens/internal/model"
	"repolens/internal/model/dto"
	"repolens/internal/model/query"
	"repolens/pkg/consts"
	myerr "repolens/pkg/error"
	"repolens/pkg/prom"
	"repolens/pkg/util"

	"golang.org/x/sync/errgroup"
)

type RecommendService struct {
	userRepos UserRepoStore
	cache     ProcessedCache
	index     VectorIndex
}

func NewRecommendService(userRepos UserRepoStore, cache ProcessedCache, index VectorIndex) *RecommendService {
	return &RecommendService{
		userRepos: userRepos,
		cache:     cache,
		index:     index,
	}
}

func ParseUserId(raw string) (int64, error) {
	userId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userId <= 0 {
		return 0, myerr.InvalidParam("userId must be a positive integer")
	}
	return userId, nil
}

func (s *RecommendService) Recommend(ctx context.Context, rawUserId string) (*dto.RecommendationResp, error) {
	userId, err := ParseUserId(rawUserId)
	if err != nil {
		return nil, err
	}
	rows, err := s.userRepos.List(ctx, &query.UserRepoQuery{UserId: userId, Limit: consts.RecommendRepoLimit})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, myerr.NotFound(fmt.Sprintf("no repositories found for user %d", userId))
	}
	userRepos := make([]string, len(rows))
	for i, row := range rows {
		userRepos[i] = row.Repo
	}

	results := make([][]*model.Match, len(userRepos))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, repo := range userRepos {
		i, repo := i, repo
		eg.Go(func() error {
			vector, found, err := s.cache.Get(egCtx, util.GetProcessedKey(repo))
			if err != nil {
				return err
			}
			if !found {
				prom.CacheProbes.WithLabelValues(consts.CacheProbeMiss).Inc()
				return nil
			}
			prom.CacheProbes.WithLabelValues(consts.CacheProbeHit).Inc()
			matches, err := s.index.Query(egCtx, vector.Values, model.QueryOptions{
				TopK:           consts.RecommendTopK,
				ReturnValues:   false,
				ReturnMetadata: true,
			})
			if err != nil {
				return fmt.Errorf("query neighbours of %s: %w", repo, err)
			}
			results[i] = matches
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	prom.RecommendationsServed.Inc()
	return &dto.RecommendationResp{
		Recommendations: Rank(results, userRepos),
		UserRepos:       userRepos,
	}, nil
}

// Rank aggregates neighbour lists. count is the number of lists a candidate appears in and score is
// its best similarity. Candidates are ordered by count, then score, and the user's own repositories
// are dropped.
func Rank(results [][]*model.Match, own []string) []dto.Recommendation {
	counts := make(map[string]int)
	scores := make(map[string]float32)
	candidates := make([]string, 0)
	for _, matches := range results {
		seen := make(map[string]struct{}, len(matches))
		for _, m := range matches {
			repo := m.CandidateRepo()
			if _, ok := seen[repo]; ok {
				continue
			}
			seen[repo] = struct{}{}
			if _, ok := counts[repo]; !ok {
				candidates = append(candidates, repo)
				scores[repo] = m.Score
			}
			counts[repo]++
			if m.Score > scores[repo] {
				scores[repo] = m.Score
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return a < b
	})

	excluded := make(map[string]struct{}, len(own))
	for _, repo := range own {
		excluded[repo] = struct{}{}
	}
	recommendations := make([]dto.Recommendation, 0, len(candidates))
	for _, repo := range candidates {
		if _, ok := excluded[repo]; ok {
			continue
		}
		excluded[repo] = struct{}{}
		recommendations = append(recommendations, dto.Recommendation{
			Repo:  repo,
			Count: counts[repo],
			Score: scores[repo],
		})
	}
	return recommendations
}
