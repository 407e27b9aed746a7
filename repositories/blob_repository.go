package repositories

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// BlobRepository is the upload strategy used by attachment side effects:
// store a payload under a name, delete it again. Buckets are addressed by
// URL (file://, s3://, gs://) so local disk and cloud storage share one
// implementation.
type BlobRepository interface {
	Upload(ctx context.Context, bucketUrl, fileName string, src io.Reader) error
	DeleteFile(ctx context.Context, bucketUrl, fileName string) error
}

type blobRepository struct {
	mu      sync.Mutex
	buckets map[string]*blob.Bucket
}

func NewBlobRepository() BlobRepository {
	return &blobRepository{buckets: make(map[string]*blob.Bucket)}
}

func (repo *blobRepository) openBucket(ctx context.Context, bucketUrl string) (*blob.Bucket, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if bucket, ok := repo.buckets[bucketUrl]; ok {
		return bucket, nil
	}
	bucket, err := blob.OpenBucket(ctx, bucketUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketUrl)
	}
	repo.buckets[bucketUrl] = bucket
	return bucket, nil
}

func (repo *blobRepository) Upload(ctx context.Context, bucketUrl, fileName string, src io.Reader) error {
	bucket, err := repo.openBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}

	writer, err := bucket.NewWriter(ctx, fileName, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to open writer for %s", fileName)
	}
	if _, err := io.Copy(writer, src); err != nil {
		_ = writer.Close()
		return errors.Wrapf(err, "failed to write blob %s", fileName)
	}
	return errors.Wrapf(writer.Close(), "failed to close writer for %s", fileName)
}

func (repo *blobRepository) DeleteFile(ctx context.Context, bucketUrl, fileName string) error {
	bucket, err := repo.openBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}
	return errors.Wrapf(bucket.Delete(ctx, fileName), "failed to delete blob %s", fileName)
}
