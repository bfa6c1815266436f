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
	"sync"

	"repolens/internal/model"
	"repolens/internal/model/query"
	"repolens/internal/remote"
)

type MetadataFetcher interface {
	GetReadme(ctx context.Context, token, owner, repo string) (string, error)
	ListLanguages(ctx context.Context, token, owner, repo string) ([]string, error)
}

type RepoLister interface {
	GetAuthenticatedUser(ctx context.Context, token string) (*remote.GithubUser, error)
	ListOwnedRepos(ctx context.Context, token string) ([]string, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, readme string, languages []string) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ProcessedCache is the idempotency gate keyed by "processed_<repo>".
type ProcessedCache interface {
	Get(ctx context.Context, key string) (*model.Vector, bool, error)
	Put(ctx context.Context, key string, vector *model.Vector) error
}

type VectorIndex interface {
	Upsert(ctx context.Context, vectors []*model.Vector) (*model.UpsertResult, error)
	Query(ctx context.Context, vector []float32, opts model.QueryOptions) ([]*model.Match, error)
	Describe(ctx context.Context) (*model.IndexStats, error)
	Dimension() int
}

type UserStore interface {
	List(ctx context.Context) ([]*model.User, error)
	GetById(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) error
}

type UserRepoStore interface {
	EnsureAssociation(ctx context.Context, userId int64, repo string) (bool, error)
	List(ctx context.Context, q *query.UserRepoQuery) ([]*model.UserRepo, error)
}

type RepoLocker interface {
	GetRepoLock(repo string) *sync.Mutex
}

type JobSender interface {
	Send(ctx context.Context, job *model.ProcessingJob) error
}
