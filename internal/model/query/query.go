package query

type BatchParseReq struct {
	Repos []string `json:"repos" validate:"required,min=1,dive,required,fullname"`
}

type ParseReq struct {
	Repo string `json:"repo" validate:"required,fullname"`
}

type ProcessUserReq struct {
	GithubToken string `json:"githubToken" validate:"required"`
	UserId      int64  `json:"userId" validate:"required,gt=0"`
}

type CreateUserReq struct {
	Username    string `json:"username" validate:"required,max=255"`
	GithubToken string `json:"githubToken" validate:"max=255"`
	GithubId    string `json:"githubId" validate:"max=128"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type UserRepoQuery struct {
	UserId int64
	Repo   string
	Limit  int
}
