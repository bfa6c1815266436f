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

package server

import (
	"context"
	"time"

	"repolens/internal/queue"
	"repolens/internal/service"
	"repolens/pkg/config"

	"go.uber.org/zap"
)

// WorkerServer pulls job batches off the queue and hands each one to the ingest service.
type WorkerServer struct {
	jobQueue      *queue.JobQueue
	ingestService *service.IngestService
	batchSize     int
	batchWait     time.Duration
	done          chan struct{}
}

func NewWorkerServer(config *config.Config, jobQueue *queue.JobQueue, ingestService *service.IngestService) *WorkerServer {
	return &WorkerServer{
		jobQueue:      jobQueue,
		ingestService: ingestService,
		batchSize:     config.Worker.BatchSize,
		batchWait:     config.GetBatchWait(),
		done:          make(chan struct{}),
	}
}

func (w *WorkerServer) Start(ctx context.Context) error {
	defer close(w.done)
	zap.S().Infof("[WORKER] consuming jobs, batch size %d, batch wait %v", w.batchSize, w.batchWait)
	for {
		jobs, err := w.jobQueue.ReceiveBatch(ctx, w.batchSize, w.batchWait)
		if len(jobs) > 0 {
			// in-flight jobs finish on a context detached from shutdown, bounded by the job timeout
			w.ingestService.ProcessBatch(context.WithoutCancel(ctx), jobs)
		}
		if err != nil || ctx.Err() != nil {
			if pending := w.jobQueue.Len(); pending > 0 {
				zap.S().Warnf("[WORKER] stopped with %d undelivered jobs", pending)
			}
			return nil
		}
	}
}

func (w *WorkerServer) Stop(ctx context.Context) error {
	select {
	case <-w.done:
	case <-ctx.Done():
		zap.S().Warnf("[WORKER] shutdown timeout, batch still running")
	}
	zap.S().Infof("[WORKER] server shutdown.")
	return nil
}
