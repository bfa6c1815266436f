package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"repolens/internal/model/query"
	"repolens/internal/remote"
	"repolens/pkg/config"
	myerr "repolens/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnqueueService(q JobSender, lister RepoLister) *EnqueueService {
	conf := &config.Config{}
	conf.Github.Token = "service-token"
	return NewEnqueueService(conf, q, lister)
}

func TestEnqueueBatch_OpenSourceJobs(t *testing.T) {
	q := &fakeQueue{}
	svc := newEnqueueService(q, &fakeLister{})

	accepted, err := svc.EnqueueBatch(context.Background(), []string{"golang/go", "acme/api"})
	require.NoError(t, err)

	assert.Equal(t, []string{"golang/go", "acme/api"}, accepted)
	require.Len(t, q.jobs, 2)
	for _, job := range q.jobs {
		assert.True(t, job.IsOpenSource)
		assert.Equal(t, "service-token", job.GithubToken)
		assert.Zero(t, job.UserId)
	}
}

func TestEnqueueBatch_QueueFailure(t *testing.T) {
	q := &fakeQueue{err: errors.New("queue closed")}
	svc := newEnqueueService(q, &fakeLister{})

	_, err := svc.EnqueueBatch(context.Background(), []string{"golang/go"})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, myerr.StatusOf(err))
}

func TestEnqueueForUser_EveryListedRepo(t *testing.T) {
	repos := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		repos = append(repos, "octocat/repo-"+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	q := &fakeQueue{}
	svc := newEnqueueService(q, &fakeLister{user: &remote.GithubUser{Login: "octocat", ID: 1}, repos: repos})

	accepted, err := svc.EnqueueForUser(context.Background(), &query.ProcessUserReq{GithubToken: "user-token", UserId: 7})
	require.NoError(t, err)

	assert.Equal(t, repos, accepted)
	require.Len(t, q.jobs, 250)
	for _, job := range q.jobs {
		assert.False(t, job.IsOpenSource)
		assert.Equal(t, "user-token", job.GithubToken)
		assert.Equal(t, "octocat", job.Username)
		assert.Equal(t, int64(7), job.UserId)
	}
}

func TestEnqueueForUser_Errors(t *testing.T) {
	svc := newEnqueueService(&fakeQueue{}, &fakeLister{err: myerr.NewAppendCode(http.StatusUnauthorized, "bad credentials")})

	_, err := svc.EnqueueForUser(context.Background(), &query.ProcessUserReq{UserId: 7})
	assert.Equal(t, http.StatusBadRequest, myerr.StatusOf(err))

	_, err = svc.EnqueueForUser(context.Background(), &query.ProcessUserReq{GithubToken: "bad", UserId: 7})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, myerr.StatusOf(err))
}

func TestCatalogRefresh(t *testing.T) {
	q := &fakeQueue{}
	conf := &config.Config{}
	conf.Github.Token = "service-token"
	conf.Scheduler.Catalog.Repos = []string{"golang/go", "acme/api"}
	svc := NewCatalogService(conf, NewEnqueueService(conf, q, &fakeLister{}))

	require.NoError(t, svc.Refresh(context.Background()))
	require.Len(t, q.jobs, 2)
	assert.True(t, q.jobs[0].IsOpenSource)

	empty := NewCatalogService(&config.Config{}, NewEnqueueService(conf, q, &fakeLister{}))
	require.NoError(t, empty.Refresh(context.Background()))
	assert.Len(t, q.jobs, 2)
}
