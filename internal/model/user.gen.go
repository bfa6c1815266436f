package model

import (
	"time"
)

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	GithubToken string    `gorm:"column:github_token;size:255" json:"github_token"`
	GithubID    string    `gorm:"column:github_id;size:128" json:"github_id"`
	Email       string    `gorm:"column:email;size:255" json:"email"`
	Username    string    `gorm:"column:username;size:255;index:idx_user_username" json:"username"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
