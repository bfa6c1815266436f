package gorm

import (
	"testing"

	"repolens/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMysqlDSN(t *testing.T) {
	dsn, err := MysqlDSN(&config.DBConfig{
		User:     "root",
		Password: "p@ss",
		Host:     "127.0.0.1",
		Port:     3306,
		Database: "repolens",
		Timeout:  "5s",
	})
	require.NoError(t, err)
	assert.Contains(t, dsn, "root:p@ss@tcp(127.0.0.1:3306)/repolens?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=5s")
	assert.Contains(t, dsn, "charset=utf8mb4")

	_, err = MysqlDSN(&config.DBConfig{Timeout: "soon"})
	assert.Error(t, err)
}

func TestNewSqliteClient_Memory(t *testing.T) {
	db, err := NewSqliteClient(&config.DBConfig{Path: ":memory:"})
	require.NoError(t, err)
	var one int
	require.NoError(t, db.Raw("select 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
