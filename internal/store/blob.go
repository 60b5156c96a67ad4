package store

import (
	"bytes"
	"context"

	"go.uber.org/zap"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/s3blob" // register the s3:// scheme

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/codec"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/logging"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/metrics"
)

// BlobStore persists payloads as one object per cache key in a
// gocloud.dev blob bucket (s3://... in production, mem:// in tests).
//
// Transport faults never cross this boundary: the internal methods
// return classified errors, and the public Store methods log them and
// map them to absent/false results. See the package comment for the
// rationale.
type BlobStore struct {
	bucketURL   string
	prefix      string
	bucket      *blob.Bucket
	initialized bool
	metrics     *metrics.Collector
}

// NewBlobStore creates a store backed by the bucket at bucketURL
// (e.g. "s3://my-bucket?region=us-east-1"). A non-empty prefix is
// prepended to every object key, joined with "/". The bucket is opened
// and its reachability verified on first use.
func NewBlobStore(bucketURL, prefix string) *BlobStore {
	return &BlobStore{bucketURL: bucketURL, prefix: prefix}
}

// NewBlobStoreFromBucket creates a store over an already-opened bucket.
// Reachability is still verified on first use.
func NewBlobStoreFromBucket(bucket *blob.Bucket, prefix string) *BlobStore {
	return &BlobStore{bucket: bucket, prefix: prefix}
}

// Instrument attaches a metrics collector counting absorbed faults.
func (s *BlobStore) Instrument(m *metrics.Collector) {
	s.metrics = m
}

func (s *BlobStore) init(ctx context.Context) error {
	if s.initialized {
		return nil
	}
	if s.bucket == nil {
		b, err := blob.OpenBucket(ctx, s.bucketURL)
		if err != nil {
			return errors.Wrap(err, errors.KindStorageUnavailable, "open bucket "+s.bucketURL)
		}
		s.bucket = b
	}
	ok, err := s.bucket.IsAccessible(ctx)
	if err != nil {
		return errors.Wrap(err, errors.KindStorageUnavailable, "check bucket accessibility")
	}
	if !ok {
		return errors.New(errors.KindStorageUnavailable, "bucket is not accessible")
	}
	s.initialized = true
	return nil
}

// Exists implements Store. Any bucket fault, including failed
// initialization, is logged and reported as false; the returned error
// is always nil.
func (s *BlobStore) Exists(ctx context.Context, req feed.Request) (bool, error) {
	ok, err := s.exists(ctx, req)
	if err != nil {
		s.metrics.ObserveStorageFault()
		logging.Error("blob store existence check failed",
			zap.String("key", s.key(req)), zap.Error(err))
		return false, nil
	}
	return ok, nil
}

// Load implements Store. Bucket faults are logged and reported as
// absent; codec failures on a successfully fetched object are real
// errors and do surface.
func (s *BlobStore) Load(ctx context.Context, req feed.Request) (any, bool, error) {
	data, ok, err := s.load(ctx, req)
	if err != nil {
		if errors.Is(err, errors.KindCodec) {
			return nil, false, err
		}
		s.metrics.ObserveStorageFault()
		logging.Error("blob store load failed",
			zap.String("key", s.key(req)), zap.Error(err))
		return nil, false, nil
	}
	return data, ok, nil
}

// Store implements Store. Bucket faults are logged and reported as an
// empty location with no error.
func (s *BlobStore) Store(ctx context.Context, data any, req feed.Request) (string, error) {
	loc, err := s.store(ctx, data, req)
	if err != nil {
		if errors.Is(err, errors.KindCodec) {
			return "", err
		}
		s.metrics.ObserveStorageFault()
		logging.Error("blob store upload failed",
			zap.String("key", s.key(req)), zap.Error(err))
		return "", nil
	}
	return loc, nil
}

func (s *BlobStore) exists(ctx context.Context, req feed.Request) (bool, error) {
	if err := s.init(ctx); err != nil {
		return false, err
	}
	ok, err := s.bucket.Exists(ctx, s.key(req))
	if err != nil {
		return false, errors.Wrap(err, errors.KindStorageUnavailable, "check object existence")
	}
	return ok, nil
}

func (s *BlobStore) load(ctx context.Context, req feed.Request) (any, bool, error) {
	if err := s.init(ctx); err != nil {
		return nil, false, err
	}
	raw, err := s.bucket.ReadAll(ctx, s.key(req))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, errors.KindStorageUnavailable, "read object")
	}
	data, err := codec.Decode(req.Format, bytes.NewReader(raw))
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *BlobStore) store(ctx context.Context, data any, req feed.Request) (string, error) {
	if err := s.init(ctx); err != nil {
		return "", err
	}
	// Buffer the full encoded payload, then upload as a single object.
	var buf bytes.Buffer
	if err := codec.Encode(data, req.Format, &buf); err != nil {
		return "", err
	}
	key := s.key(req)
	if err := s.bucket.WriteAll(ctx, key, buf.Bytes(), nil); err != nil {
		return "", errors.Wrap(err, errors.KindStorageUnavailable, "write object")
	}
	return key, nil
}

func (s *BlobStore) key(req feed.Request) string {
	if s.prefix == "" {
		return req.CacheKey()
	}
	return s.prefix + "/" + req.CacheKey()
}
