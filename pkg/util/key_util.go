package util

import (
	"fmt"
	"strings"

	"repolens/pkg/consts"
)

// GetProcessedKey is the idempotency key of a repository.
func GetProcessedKey(repoFullName string) string {
	return consts.ProcessedKeyPrefix + repoFullName
}

func GetRepoLockKey(repoFullName string) string {
	return fmt.Sprintf("ingest/lock/%s", repoFullName)
}

func GetProcessedCacheKey(key string) string {
	return fmt.Sprintf("ingest/processed/%s", key)
}

// SplitOrgRepo splits "owner/repo"; ok is false for anything else.
func SplitOrgRepo(fullName string) (owner, repo string, ok bool) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func GetOrgRepo(org, repo string) string {
	return fmt.Sprintf("%s/%s", org, repo)
}
