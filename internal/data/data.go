// Copyright (c) 2025 dingodb.com, Inc. All Rights Reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http:www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package data

import (
	"errors"
	"fmt"

	"repolens/internal/model"
	"repolens/pkg/config"
	"repolens/pkg/consts"
	myorm "repolens/pkg/gorm"

	"github.com/google/wire"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gorm.io/gorm"
)

var BaseDataProvider = wire.NewSet(NewBaseData)

type BaseData struct {
	BizDB      *gorm.DB
	Cache      *cache.Cache
	VectorConn *grpc.ClientConn
}

func initDB(dbConfig *config.DBConfig) (*gorm.DB, error) {
	var dbClient *gorm.DB
	var err error
	switch dbConfig.Type {
	case consts.DB_MYSQL:
		dbClient, err = myorm.NewMysqlClient(dbConfig)
	case consts.DB_SQLITE:
		dbClient, err = myorm.NewSqliteClient(dbConfig)
	default:
		err = errors.New(fmt.Sprintf("unknown db type: %s", dbConfig.Type))
	}

	return dbClient, err
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.UserRepo{}, &model.ProcessedRepo{})
}

func NewBaseData(config *config.Config) (*BaseData, func(), error) {
	bizClient, err := initDB(&config.BizDBConfig)
	if err != nil {
		return nil, nil, err
	}
	if err = Migrate(bizClient); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	vectorConn, err := grpc.NewClient(config.GetQdrantAddr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("qdrant connect: %w", err)
	}

	cleanup := func() {
		bizDb, _ := bizClient.DB()
		_ = bizDb.Close()
		_ = vectorConn.Close()
		zap.S().Info("datasource cleanup ok")
	}

	if !config.IsRelease() {
		bizClient = bizClient.Debug()
	}
	return &BaseData{
		BizDB:      bizClient,
		Cache:      cache.New(config.GetDefaultExpiration(), config.GetCleanupInterval()),
		VectorConn: vectorConn,
	}, cleanup, nil
}
