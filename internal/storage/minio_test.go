package storage

import (
	"errors"
	"testing"

	"github.com/globalsolutions/website/backend/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

func TestIsNoSuchKey(t *testing.T) {
	require.True(t, isNoSuchKey(minio.ErrorResponse{Code: "NoSuchKey"}))
	require.False(t, isNoSuchKey(minio.ErrorResponse{Code: "AccessDenied"}))
	require.False(t, isNoSuchKey(errors.New("dial tcp: refused")))
}

func TestNewMinIOStorageRequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(config.MinIOConfig{Bucket: "site-assets"})
	require.ErrorContains(t, err, "minio config missing")
}
