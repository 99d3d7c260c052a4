package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/creatorhub/internal/shared/config"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	conn, err := Open(&config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	my := config.DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, Username: "app", Password: "pw", Database: "creatorhub"}
	assert.Equal(t, "app:pw@tcp(db:3306)/creatorhub?charset=utf8mb4&parseTime=True&loc=UTC", my.GetDSN())

	pg := config.DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, Username: "app", Password: "pw", Database: "creatorhub"}
	assert.Contains(t, pg.GetDSN(), "dbname=creatorhub")

	lite := config.DatabaseConfig{Driver: "sqlite", Database: "dev.db"}
	assert.Equal(t, "dev.db", lite.GetDSN())
}
