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

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var SysConfig *Config

type Config struct {
	Server      ServerConfig `json:"server" yaml:"server"`
	BizDBConfig DBConfig     `json:"bizDB" yaml:"bizDB"`
	Cache       Cache        `json:"cache" yaml:"cache"`
	Retry       Retry        `json:"retry" yaml:"retry"`
	Log         LogConfig    `json:"log" yaml:"log"`
	Github      Github       `json:"github" yaml:"github"`
	Genai       Genai        `json:"genai" yaml:"genai"`
	Qdrant      Qdrant       `json:"qdrant" yaml:"qdrant"`
	Worker      Worker       `json:"worker" yaml:"worker"`
	Scheduler   Scheduler    `json:"scheduler" yaml:"scheduler"`
}

type ServerConfig struct {
	Mode      string `json:"mode" yaml:"mode" validate:"omitempty,oneof=debug release"`
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port" validate:"min=1,max=65535"`
	Metrics   bool   `json:"metrics" yaml:"metrics"`
	AppSecret string `json:"-" yaml:"appSecret" validate:"required"`
}

type Retry struct {
	Delay    int  `json:"delay" yaml:"delay" validate:"min=0,max=60"`
	MaxDelay int  `json:"maxDelay" yaml:"maxDelay" validate:"min=0,max=300"`
	Attempts uint `json:"attempts" yaml:"attempts" validate:"min=1,max=10"`
}

type LogConfig struct {
	Path       string `json:"path" yaml:"path"`
	Level      string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	MaxSize    int    `json:"maxSize" yaml:"maxSize"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups"`
	MaxAge     int    `json:"maxAge" yaml:"maxAge"`
}

type Cache struct {
	DefaultExpiration int `json:"defaultExpiration" yaml:"defaultExpiration"`
	CleanupInterval   int `json:"cleanupInterval" yaml:"cleanupInterval"`
	// ProcessedTTL is in hours. Zero keeps processed entries forever.
	ProcessedTTL int `json:"processedTTL" yaml:"processedTTL" validate:"min=0"`
}

type Github struct {
	ApiBase string `json:"apiBase" yaml:"apiBase" validate:"omitempty,url"`
	Token   string `json:"-" yaml:"token"`
	PerPage int    `json:"perPage" yaml:"perPage" validate:"min=0,max=100"`
}

type Genai struct {
	ApiKey         string `json:"-" yaml:"apiKey"`
	SummaryModel   string `json:"summaryModel" yaml:"summaryModel"`
	EmbeddingModel string `json:"embeddingModel" yaml:"embeddingModel"`
}

type Qdrant struct {
	Host       string `json:"host" yaml:"host"`
	Port       int    `json:"port" yaml:"port"`
	Collection string `json:"collection" yaml:"collection"`
	Dimension  uint64 `json:"dimension" yaml:"dimension"`
}

type Worker struct {
	BatchSize  int `json:"batchSize" yaml:"batchSize" validate:"min=0,max=1000"`
	BatchWait  int `json:"batchWait" yaml:"batchWait"`
	QueueSize  int `json:"queueSize" yaml:"queueSize"`
	JobTimeout int `json:"jobTimeout" yaml:"jobTimeout"`
}

type Scheduler struct {
	Catalog Catalog `json:"catalog" yaml:"catalog"`
}

type Catalog struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Cron    string   `json:"cron" yaml:"cron" validate:"required_if=Enabled true"`
	Repos   []string `json:"repos" yaml:"repos"`
}

type DBConfig struct {
	Type        string `yaml:"type" validate:"omitempty,oneof=mysql sqlite"`
	User        string `yaml:"user"`
	Password    string `json:"-" yaml:"password"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Database    string `yaml:"database"`
	Path        string `yaml:"path"`
	Timeout     string `yaml:"timeout"`
	MaxConn     int    `yaml:"maxConn"`
	MaxIdleConn int    `yaml:"maxIdleConn"`
}

func (c *Config) GetHost() string {
	return c.Server.Host
}

func (c *Config) EnableMetric() bool {
	return c.Server.Metrics
}

func (c *Config) IsRelease() bool {
	return c.Server.Mode == "release"
}

func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.BizDBConfig.Type == "" {
		c.BizDBConfig.Type = "mysql"
	}
	if c.Retry.Attempts == 0 {
		c.Retry.Attempts = 3
	}
	if c.Retry.Delay == 0 {
		c.Retry.Delay = 1
	}
	if c.Retry.MaxDelay == 0 {
		c.Retry.MaxDelay = 30
	}
	if c.Github.ApiBase == "" {
		c.Github.ApiBase = "https://api.github.com"
	}
	if c.Github.PerPage == 0 {
		c.Github.PerPage = 100
	}
	if c.Genai.SummaryModel == "" {
		c.Genai.SummaryModel = "gemini-1.5-flash-latest"
	}
	if c.Genai.EmbeddingModel == "" {
		c.Genai.EmbeddingModel = "text-embedding-004"
	}
	if c.Qdrant.Host == "" {
		c.Qdrant.Host = "localhost"
	}
	if c.Qdrant.Port == 0 {
		c.Qdrant.Port = 6334
	}
	if c.Qdrant.Collection == "" {
		c.Qdrant.Collection = "repositories"
	}
	if c.Qdrant.Dimension == 0 {
		c.Qdrant.Dimension = 768
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 10
	}
	if c.Worker.BatchWait == 0 {
		c.Worker.BatchWait = 500
	}
	if c.Worker.QueueSize == 0 {
		c.Worker.QueueSize = 1000
	}
	if c.Worker.JobTimeout == 0 {
		c.Worker.JobTimeout = 120
	}
}

func (c *Config) GetDefaultExpiration() time.Duration {
	if c.Cache.DefaultExpiration == 0 {
		c.Cache.DefaultExpiration = 5
	}
	return time.Duration(c.Cache.DefaultExpiration) * time.Hour
}

func (c *Config) GetCleanupInterval() time.Duration {
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = 10
	}
	return time.Duration(c.Cache.CleanupInterval) * time.Hour
}

// GetProcessedTTL returns 0 when processed entries never expire.
func (c *Config) GetProcessedTTL() time.Duration {
	return time.Duration(c.Cache.ProcessedTTL) * time.Hour
}

func (c *Config) GetRetryDelay() time.Duration {
	return time.Duration(c.Retry.Delay) * time.Second
}

func (c *Config) GetRetryMaxDelay() time.Duration {
	return time.Duration(c.Retry.MaxDelay) * time.Second
}

func (c *Config) GetBatchWait() time.Duration {
	return time.Duration(c.Worker.BatchWait) * time.Millisecond
}

func (c *Config) GetJobTimeout() time.Duration {
	return time.Duration(c.Worker.JobTimeout) * time.Second
}

func (c *Config) GetQdrantAddr() string {
	return fmt.Sprintf("%s:%d", c.Qdrant.Host, c.Qdrant.Port)
}

func (c *Config) GetEnableCatalog() bool {
	return c.Scheduler.Catalog.Enabled
}

func (c *Config) GetCatalogCron() string {
	return c.Scheduler.Catalog.Cron
}

func Scan(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	var c Config
	err := yaml.Unmarshal(b, &c)
	if err != nil {
		return nil, err
	}
	c.SetDefaults()

	validate := validator.New()
	err = validate.Struct(&c)
	if err != nil {
		var invalidValidationError *validator.InvalidValidationError
		if errors.As(err, &invalidValidationError) {
			zap.S().Errorf("Invalid validation error: %v\n", err)
		}
		return nil, err
	}
	SysConfig = &c

	// secrets stay out of the banner
	log.Infof("config loaded: server=%s:%d mode=%s db=%s qdrant=%s/%s",
		c.Server.Host, c.Server.Port, c.Server.Mode, c.BizDBConfig.Type, c.GetQdrantAddr(), c.Qdrant.Collection)
	return &c, nil
}
