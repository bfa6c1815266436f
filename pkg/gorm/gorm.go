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

package gorm

import (
	"fmt"
	"time"

	"repolens/pkg/config"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func MysqlDSN(dbConfig *config.DBConfig) (string, error) {
	cfg := mysqldriver.NewConfig()
	cfg.User = dbConfig.User
	cfg.Passwd = dbConfig.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", dbConfig.Host, dbConfig.Port)
	cfg.DBName = dbConfig.Database
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	if dbConfig.Timeout != "" {
		timeout, err := time.ParseDuration(dbConfig.Timeout)
		if err != nil {
			return "", fmt.Errorf("parse db timeout %q: %w", dbConfig.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	return cfg.FormatDSN(), nil
}

func NewMysqlClient(dbConfig *config.DBConfig) (*gorm.DB, error) {
	dsn, err := MysqlDSN(dbConfig)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dbConfig.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxConn)
	}
	if dbConfig.MaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// NewSqliteClient opens a file (or ":memory:") database, used for local runs and tests.
func NewSqliteClient(dbConfig *config.DBConfig) (*gorm.DB, error) {
	path := dbConfig.Path
	if path == "" {
		path = "repolens.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
