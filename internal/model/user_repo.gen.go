package model

import (
	"time"
)

const TableNameUserRepo = "user_repo"

// UserRepo mapped from table <user_repo>. One row per (user_id, repo).
type UserRepo struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_user_repo,priority:1" json:"user_id"`
	Repo      string    `gorm:"column:repo;size:255;not null;uniqueIndex:uk_user_repo,priority:2" json:"repo"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

// TableName UserRepo's table name
func (*UserRepo) TableName() string {
	return TableNameUserRepo
}
