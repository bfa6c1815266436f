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

package queue

import (
	"context"
	"net/http"
	"time"

	"repolens/internal/model"
	"repolens/pkg/config"
	myerr "repolens/pkg/error"
	"repolens/pkg/prom"

	"github.com/bytedance/sonic"
	"github.com/google/wire"
	"go.uber.org/zap"
)

var QueueProvider = wire.NewSet(NewJobQueue)

var ErrQueueFull = myerr.NewAppendCode(http.StatusServiceUnavailable, "job queue is full")

// JobQueue is a bounded in-process queue of JSON encoded processing jobs.
type JobQueue struct {
	messages chan []byte
}

func NewJobQueue(config *config.Config) *JobQueue {
	return &JobQueue{messages: make(chan []byte, config.Worker.QueueSize)}
}

// Send blocks while the queue is full until ctx is done.
func (q *JobQueue) Send(ctx context.Context, job *model.ProcessingJob) error {
	body, err := sonic.Marshal(job)
	if err != nil {
		return err
	}
	select {
	case q.messages <- body:
		prom.JobsEnqueued.WithLabelValues(job.Variant()).Inc()
		return nil
	case <-ctx.Done():
		zap.S().Warnf("enqueue %s abandoned: %v", job.Repo, ctx.Err())
		return ErrQueueFull
	}
}

func (q *JobQueue) SendBatch(ctx context.Context, jobs []*model.ProcessingJob) error {
	for _, job := range jobs {
		if err := q.Send(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// ReceiveBatch waits for the first message, then keeps collecting until max messages
// arrived or wait elapsed. Undecodable messages are logged and dropped.
func (q *JobQueue) ReceiveBatch(ctx context.Context, max int, wait time.Duration) ([]*model.ProcessingJob, error) {
	if max <= 0 {
		max = 1
	}
	jobs := make([]*model.ProcessingJob, 0, max)
	select {
	case body := <-q.messages:
		jobs = appendDecoded(jobs, body)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	for len(jobs) < max {
		select {
		case body := <-q.messages:
			jobs = appendDecoded(jobs, body)
		case <-timer.C:
			return jobs, nil
		case <-ctx.Done():
			return jobs, nil
		}
	}
	return jobs, nil
}

func (q *JobQueue) Len() int {
	return len(q.messages)
}

func appendDecoded(jobs []*model.ProcessingJob, body []byte) []*model.ProcessingJob {
	var job model.ProcessingJob
	if err := sonic.Unmarshal(body, &job); err != nil {
		zap.S().Errorf("decode job message err: %v, body: %s", err, string(body))
		return jobs
	}
	return append(jobs, &job)
}
