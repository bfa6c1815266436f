package model

import "repolens/pkg/consts"

// ProcessingJob is the queue message. Open-source jobs never create a user association.
type ProcessingJob struct {
	Repo         string `json:"repo"`
	GithubToken  string `json:"githubToken"`
	Username     string `json:"username,omitempty"`
	UserId       int64  `json:"userId,omitempty"`
	IsOpenSource bool   `json:"isOpenSource,omitempty"`
}

func (j *ProcessingJob) Variant() string {
	if j.IsOpenSource {
		return consts.VariantOpenSource
	}
	return consts.VariantUserOwned
}
