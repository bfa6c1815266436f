package queue

import (
	"context"
	"testing"
	"time"

	"repolens/internal/model"
	"repolens/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(size int) *JobQueue {
	conf := &config.Config{}
	conf.Worker.QueueSize = size
	return NewJobQueue(conf)
}

func TestJobQueue_RoundTrip(t *testing.T) {
	q := newTestQueue(10)
	ctx := context.Background()
	require.NoError(t, q.Send(ctx, &model.ProcessingJob{Repo: "acme/api", GithubToken: "t", IsOpenSource: true}))
	require.NoError(t, q.Send(ctx, &model.ProcessingJob{Repo: "octocat/cli", GithubToken: "u", Username: "octocat", UserId: 7}))

	jobs, err := q.ReceiveBatch(ctx, 10, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, &model.ProcessingJob{Repo: "acme/api", GithubToken: "t", IsOpenSource: true}, jobs[0])
	assert.Equal(t, "octocat", jobs[1].Username)
	assert.Equal(t, int64(7), jobs[1].UserId)
	assert.Equal(t, 0, q.Len())
}

func TestJobQueue_BatchIsCapped(t *testing.T) {
	q := newTestQueue(10)
	for _, repo := range []string{"a/1", "a/2", "a/3", "a/4", "a/5"} {
		require.NoError(t, q.Send(context.Background(), &model.ProcessingJob{Repo: repo, IsOpenSource: true}))
	}

	jobs, err := q.ReceiveBatch(context.Background(), 3, time.Second)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
	assert.Equal(t, 2, q.Len())
}

func TestJobQueue_ReceiveStopsOnCancel(t *testing.T) {
	q := newTestQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs, err := q.ReceiveBatch(ctx, 3, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, jobs)
}

func TestJobQueue_SendFullQueue(t *testing.T) {
	q := newTestQueue(1)
	require.NoError(t, q.Send(context.Background(), &model.ProcessingJob{Repo: "a/1"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Send(ctx, &model.ProcessingJob{Repo: "a/2"})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestJobQueue_DropsUndecodableMessages(t *testing.T) {
	q := newTestQueue(3)
	q.messages <- []byte("{not json")
	require.NoError(t, q.Send(context.Background(), &model.ProcessingJob{Repo: "a/1"}))

	jobs, err := q.ReceiveBatch(context.Background(), 3, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "a/1", jobs[0].Repo)
}
