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

package consts

const (
	// 支持的数据库
	DB_MYSQL  = "mysql"
	DB_SQLITE = "sqlite"
)

const (
	AppName    = "repolens"
	AppVersion = "0.3.0"
)

// ProcessedKeyPrefix marks a repository whose embedding has been computed and upserted.
const ProcessedKeyPrefix = "processed_"

const (
	// RecommendTopK is the neighbour count requested per user repository.
	RecommendTopK = 5
	// RecommendRepoLimit caps how many of a user's repositories feed one recommendation.
	RecommendRepoLimit = 30
	// ProbeQueryTopK is used by the zero-vector diagnostic query.
	ProbeQueryTopK = 3
)

// vector metadata keys
const (
	MetaRepo     = "repo"
	MetaRepoName = "repoName"
	MetaOwner    = "owner"
	MetaUsername = "username"
	MetaSummary  = "summary"
)

const (
	JobResultDone     = "done"
	JobResultSkipped  = "skipped"
	JobResultAborted  = "aborted"
	JobResultFailed   = "failed"
	CacheProbeHit     = "hit"
	CacheProbeMiss    = "miss"
	PromResult        = "result"
	PromVariant       = "variant"
	VariantOpenSource = "open_source"
	VariantUserOwned  = "user_owned"
)

const GithubAcceptHeader = "application/vnd.github+json"
