package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"repolens/internal/model"
	"repolens/internal/model/query"
	myerr "repolens/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateIsIdempotentByUsername(t *testing.T) {
	users := &fakeUsers{}
	svc := NewUserService(users, &fakeUserRepos{})
	req := &query.CreateUserReq{Username: "octocat", GithubToken: "t1", GithubId: "583231", Email: "octocat@github.com"}

	first, created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "583231", first.GithubID)

	second, created, err := svc.Create(context.Background(), &query.CreateUserReq{Username: "octocat", GithubToken: "t2"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)
}

func TestUserService_List(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	users := &fakeUsers{users: []*model.User{
		{ID: 1, Username: "octocat", GithubToken: "secret", Email: "o@github.com", CreatedAt: created},
	}}
	svc := NewUserService(users, &fakeUserRepos{})

	resps, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resps, 1)
	assert.Equal(t, "octocat", resps[0].Username)
	assert.Equal(t, "o@github.com", resps[0].Email)
	assert.Equal(t, created.Unix(), resps[0].CreateTime)
}

func TestUserService_ListRepos(t *testing.T) {
	userRepos := &fakeUserRepos{}
	_, _ = userRepos.EnsureAssociation(context.Background(), 1, "octocat/hello")
	svc := NewUserService(&fakeUsers{users: []*model.User{{ID: 1, Username: "octocat"}}}, userRepos)

	repos, err := svc.ListRepos(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"octocat/hello"}, repos)

	_, err = svc.ListRepos(context.Background(), 2)
	assert.Equal(t, http.StatusNotFound, myerr.StatusOf(err))
}

func TestIndexService_ProbeQueryUsesZeroVector(t *testing.T) {
	var got []float32
	var gotOpts model.QueryOptions
	index := &fakeIndex{dim: 768, QueryFn: func(vector []float32, opts model.QueryOptions) ([]*model.Match, error) {
		got, gotOpts = vector, opts
		return []*model.Match{match("acme/api", 0)}, nil
	}}
	svc := NewIndexService(index)

	resp, err := svc.ProbeQuery(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"acme/api"}, resp.Matches)
	assert.Equal(t, make([]float32, 768), got)
	assert.Equal(t, 3, gotOpts.TopK)
}
