package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"garage_admin/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQL_SQLite(t *testing.T) {
	db, err := ConnectSQL(config.Config{StorageDriver: config.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "garage.db")})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
}

func TestConnectSQL_UnknownDriver(t *testing.T) {
	_, err := ConnectSQL(config.Config{StorageDriver: config.StorageDynamoDB})
	assert.True(t, errors.Is(err, config.ErrUnknownStorageDriver))
}

func TestNewDynamoDBConfig(t *testing.T) {
	cfg, err := NewDynamoDBConfig(context.Background(), config.Config{
		AWSRegion:        "sa-east-1",
		AWSAccessKeyID:   "local",
		AWSSecretKey:     "local",
		DynamoDBEndpoint: "http://localhost:8000",
	})
	require.NoError(t, err)
	assert.Equal(t, "sa-east-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local", creds.AccessKeyID)
}
