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

	"repolens/internal/model"
	"repolens/internal/model/dto"
	"repolens/pkg/consts"

	"go.uber.org/zap"
)

type IndexService struct {
	index VectorIndex
}

func NewIndexService(index VectorIndex) *IndexService {
	return &IndexService{index: index}
}

func (s *IndexService) Describe(ctx context.Context) (*model.IndexStats, error) {
	return s.index.Describe(ctx)
}

// ProbeQuery runs a zero-vector query to check the index answers.
func (s *IndexService) ProbeQuery(ctx context.Context) (*dto.ProbeQueryResp, error) {
	matches, err := s.index.Query(ctx, make([]float32, s.index.Dimension()), model.QueryOptions{
		TopK:           consts.ProbeQueryTopK,
		ReturnValues:   true,
		ReturnMetadata: true,
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		zap.S().Debugf("probe match %s score %f", m.CandidateRepo(), m.Score)
		ids = append(ids, m.CandidateRepo())
	}
	return &dto.ProbeQueryResp{Status: "ok", Matches: ids}, nil
}
