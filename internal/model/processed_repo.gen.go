package model

import (
	"time"
)

const TableNameProcessedRepo = "processed_repo"

// ProcessedRepo mapped from table <processed_repo>, the durable side of the processed-set cache.
type ProcessedRepo struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	CacheKey  string     `gorm:"column:cache_key;size:512;not null;uniqueIndex:uk_processed_key" json:"cache_key"`
	Value     string     `gorm:"column:value;type:mediumtext;not null" json:"value"`
	Metadata  string     `gorm:"column:metadata;type:text" json:"metadata"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

// TableName ProcessedRepo's table name
func (*ProcessedRepo) TableName() string {
	return TableNameProcessedRepo
}

func (p *ProcessedRepo) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}
