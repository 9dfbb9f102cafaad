// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so run artifacts (picking lists and invalid-row
// reports) and the hosted site sheet can live in AWS S3 or a self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the provider so handlers and stores can be
// tested against core/storage/mocks.
//
// # Helpers
//
//   - EnsureBucket: creates the artifact bucket on first start.
//   - PutBytes / ReadAll: whole-object upload and download.
//   - ListKeys: lists the artifacts of one run.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
