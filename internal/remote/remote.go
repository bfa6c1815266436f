package remote

import "github.com/google/wire"

var RemoteProvider = wire.NewSet(NewGithubClient, NewGenaiClient)
