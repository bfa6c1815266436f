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

package logger

import (
	"os"
	"path/filepath"

	"repolens/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger installs the global zap logger. Logs rotate through lumberjack; debug mode also writes to stdout.
func InitLogger(c *config.Config) *zap.Logger {
	logPath := c.Log.Path
	if logPath == "" {
		logPath = "./log/repolens.log"
	}
	_ = os.MkdirAll(filepath.Dir(logPath), 0o755)

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    orDefault(c.Log.MaxSize, 100),
		MaxBackups: orDefault(c.Log.MaxBackups, 10),
		MaxAge:     orDefault(c.Log.MaxAge, 30),
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	level := zapcore.InfoLevel
	if c.Log.Level != "" {
		if l, err := zapcore.ParseLevel(c.Log.Level); err == nil {
			level = l
		}
	} else if !c.IsRelease() {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(writer), level)}
	if !c.IsRelease() {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(logger)
	return logger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
