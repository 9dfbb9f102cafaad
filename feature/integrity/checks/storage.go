package checks

import (
	"context"
	"fmt"

	"picklist/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport is the result of a bucket check.
type StorageReport struct {
	Bucket       string `json:"bucket"`
	BucketExists bool   `json:"bucket_exists"`
	// SiteObject is only checked when the site table is kept in the bucket.
	SiteObject      string `json:"site_object,omitempty"`
	SiteObjectFound bool   `json:"site_object_found,omitempty"`
	Runs            int    `json:"runs"`
}

// OK reports whether the bucket is usable.
func (r StorageReport) OK() bool {
	return r.BucketExists && (r.SiteObject == "" || r.SiteObjectFound)
}

// CheckStorage verifies the bucket and, when siteObject is set, the site sheet.
func CheckStorage(ctx context.Context, client storage.Client, bucket, siteObject, runPrefix string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, SiteObject: siteObject}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	if siteObject != "" {
		found, err := objectExists(ctx, client, bucket, siteObject)
		if err != nil {
			return nil, fmt.Errorf("failed to look up %s: %w", siteObject, err)
		}
		report.SiteObjectFound = found
	}

	runs, err := countPrefixes(ctx, client, bucket, runPrefix+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	report.Runs = runs
	return report, nil
}

// objectExists reports whether key is stored. The listing is cancelled as soon
// as the key is seen so the lister goroutine does not block on the channel.
func objectExists(ctx context.Context, client storage.Client, bucket, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: key}) {
		if obj.Err != nil {
			return false, obj.Err
		}
		if obj.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func countPrefixes(ctx context.Context, client storage.Client, bucket, prefix string) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := 0
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return 0, obj.Err
		}
		n++
	}
	return n, nil
}

// FixStorage creates the bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Bucket ready", zap.String("bucket", bucket))
	return nil
}
