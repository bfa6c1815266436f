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

package dao

import (
	"context"
	"fmt"

	"repolens/internal/data"
	"repolens/internal/model"
	"repolens/pkg/config"
	"repolens/pkg/consts"
	"repolens/pkg/prom"
	"repolens/pkg/util"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// QdrantDao is the vector index. Point ids are name-based UUIDs of the repository full name;
// the full name itself travels in the payload.
type QdrantDao struct {
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
	dimension   uint64
	policy      util.RetryPolicy
}

func NewQdrantDao(baseData *data.BaseData, config *config.Config) *QdrantDao {
	return &QdrantDao{
		points:      pb.NewPointsClient(baseData.VectorConn),
		collections: pb.NewCollectionsClient(baseData.VectorConn),
		collection:  config.Qdrant.Collection,
		dimension:   config.Qdrant.Dimension,
		policy:      util.NewRetryPolicy(config),
	}
}

func PointId(repo string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("repolens:"+repo)).String()
}

// EnsureCollection creates the collection with cosine distance when it is missing.
func (q *QdrantDao) EnsureCollection(ctx context.Context) error {
	resp, err := q.collections.CollectionExists(ctx, &pb.CollectionExistsRequest{CollectionName: q.collection})
	if err != nil {
		return fmt.Errorf("qdrant collection exists: %w", err)
	}
	if resp.GetResult().GetExists() {
		return nil
	}
	_, err = q.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: &pb.VectorsConfig{Config: &pb.VectorsConfig_Params{
			Params: &pb.VectorParams{Size: q.dimension, Distance: pb.Distance_Cosine},
		}},
	})
	if err != nil {
		return fmt.Errorf("qdrant create collection %s: %w", q.collection, err)
	}
	zap.S().Infof("qdrant collection %s created, dimension %d", q.collection, q.dimension)
	return nil
}

func (q *QdrantDao) Upsert(ctx context.Context, vectors []*model.Vector) (*model.UpsertResult, error) {
	points := make([]*pb.PointStruct, len(vectors))
	ids := make([]string, len(vectors))
	for i, v := range vectors {
		points[i] = &pb.PointStruct{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: PointId(v.ID)}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: v.Values}}},
			Payload: metadataToPayload(&v.Metadata),
		}
		ids[i] = v.ID
	}
	wait := true
	var resp *pb.PointsOperationResponse
	err := util.Retry(ctx, q.policy, func() error {
		var err error
		resp, err = q.points.Upsert(ctx, &pb.UpsertPoints{
			CollectionName: q.collection,
			Wait:           &wait,
			Points:         points,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	prom.VectorUpserts.Add(float64(len(points)))
	return &model.UpsertResult{
		Count:       len(points),
		Ids:         ids,
		OperationId: resp.GetResult().GetOperationId(),
		Status:      resp.GetResult().GetStatus().String(),
	}, nil
}

func (q *QdrantDao) Query(ctx context.Context, vector []float32, opts model.QueryOptions) ([]*model.Match, error) {
	resp, err := q.points.Search(ctx, &pb.SearchPoints{
		CollectionName: q.collection,
		Vector:         vector,
		Limit:          uint64(opts.TopK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: opts.ReturnMetadata}},
		WithVectors:    &pb.WithVectorsSelector{SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: opts.ReturnValues}},
	})
	if err != nil {
		return nil, err
	}
	matches := make([]*model.Match, 0, len(resp.GetResult()))
	for _, pt := range resp.GetResult() {
		m := &model.Match{
			ID:    pt.GetId().GetUuid(),
			Score: pt.GetScore(),
		}
		if opts.ReturnMetadata {
			m.Metadata = payloadToMetadata(pt.GetPayload())
			if m.Metadata.Repo != "" {
				m.ID = m.Metadata.Repo
			}
		}
		if opts.ReturnValues {
			m.Values = pt.GetVectors().GetVector().GetData()
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (q *QdrantDao) Describe(ctx context.Context) (*model.IndexStats, error) {
	resp, err := q.collections.Get(ctx, &pb.GetCollectionInfoRequest{CollectionName: q.collection})
	if err != nil {
		return nil, err
	}
	info := resp.GetResult()
	return &model.IndexStats{
		Collection:          q.collection,
		Status:              info.GetStatus().String(),
		Dimensions:          info.GetConfig().GetParams().GetVectorsConfig().GetParams().GetSize(),
		VectorCount:         info.GetPointsCount(),
		IndexedVectorsCount: info.GetIndexedVectorsCount(),
		SegmentsCount:       info.GetSegmentsCount(),
	}, nil
}

func (q *QdrantDao) Dimension() int {
	return int(q.dimension)
}

func metadataToPayload(meta *model.VectorMetadata) map[string]*pb.Value {
	payload := map[string]*pb.Value{
		consts.MetaRepo:     stringValue(meta.Repo),
		consts.MetaRepoName: stringValue(meta.RepoName),
		consts.MetaOwner:    stringValue(meta.Owner),
		consts.MetaSummary:  stringValue(meta.Summary),
	}
	if meta.Username != "" {
		payload[consts.MetaUsername] = stringValue(meta.Username)
	}
	return payload
}

func payloadToMetadata(payload map[string]*pb.Value) *model.VectorMetadata {
	return &model.VectorMetadata{
		Repo:     payload[consts.MetaRepo].GetStringValue(),
		RepoName: payload[consts.MetaRepoName].GetStringValue(),
		Owner:    payload[consts.MetaOwner].GetStringValue(),
		Username: payload[consts.MetaUsername].GetStringValue(),
		Summary:  payload[consts.MetaSummary].GetStringValue(),
	}
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}
