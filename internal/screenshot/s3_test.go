package screenshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestS3SourceFetchJoinsPrefixAndNormalizesKey(t *testing.T) {
	fake := &fakeS3Client{
		objects:      map[string][]byte{"hoopsight/dev/g1.png": []byte("png-bytes")},
		bucketExists: true,
	}
	source, err := NewS3SourceWithClient("shots-bucket", "hoopsight/dev", fake)
	if err != nil {
		t.Fatalf("NewS3SourceWithClient() error = %v", err)
	}

	data, mediaType, err := source.Fetch(context.Background(), "/g1.png")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "png-bytes" || mediaType != "image/png" {
		t.Fatalf("Fetch() = %q/%q", data, mediaType)
	}
	if fake.lastBucket != "shots-bucket" {
		t.Fatalf("bucket = %q", fake.lastBucket)
	}
	if fake.lastKey != "hoopsight/dev/g1.png" {
		t.Fatalf("key = %q", fake.lastKey)
	}
}

func TestS3SourceFetchMissing(t *testing.T) {
	fake := &fakeS3Client{objects: map[string][]byte{}}
	source, err := NewS3SourceWithClient("shots-bucket", "", fake)
	if err != nil {
		t.Fatalf("NewS3SourceWithClient() error = %v", err)
	}
	_, _, err = source.Fetch(context.Background(), "missing.png")
	if !errors.Is(err, ErrScreenshotNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrScreenshotNotFound", err)
	}
}

func TestS3SourceRejectsTraversalBeforeCallingClient(t *testing.T) {
	fake := &fakeS3Client{objects: map[string][]byte{}}
	source, err := NewS3SourceWithClient("shots-bucket", "", fake)
	if err != nil {
		t.Fatalf("NewS3SourceWithClient() error = %v", err)
	}
	if _, _, err := source.Fetch(context.Background(), "../secret.png"); err == nil {
		t.Fatal("expected key validation error")
	}
	if fake.getCalls != 0 {
		t.Fatalf("client called %d times for invalid key", fake.getCalls)
	}
}

func TestS3SourceCheck(t *testing.T) {
	source, err := NewS3SourceWithClient("shots-bucket", "", &fakeS3Client{bucketExists: true})
	if err != nil {
		t.Fatalf("NewS3SourceWithClient() error = %v", err)
	}
	if err := source.Check(context.Background()); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	missing, err := NewS3SourceWithClient("shots-bucket", "", &fakeS3Client{bucketExists: false})
	if err != nil {
		t.Fatalf("NewS3SourceWithClient() error = %v", err)
	}
	if err := missing.Check(context.Background()); err == nil {
		t.Fatal("expected check error for missing bucket")
	}
}

func TestParseEndpoint(t *testing.T) {
	endpoint, secure, err := parseEndpoint("https://minio.example.com", false)
	if err != nil {
		t.Fatalf("parseEndpoint() error = %v", err)
	}
	if endpoint != "minio.example.com" || !secure {
		t.Fatalf("endpoint/secure = %q/%v", endpoint, secure)
	}

	endpoint, secure, err = parseEndpoint("localhost:9000", false)
	if err != nil {
		t.Fatalf("parseEndpoint() error = %v", err)
	}
	if endpoint != "localhost:9000" || secure {
		t.Fatalf("endpoint/secure = %q/%v", endpoint, secure)
	}
}

func TestMapMinioErrTranslatesNotFound(t *testing.T) {
	err := mapMinioErr(minio.ErrorResponse{Code: "NoSuchKey"})
	if !errors.Is(err, ErrScreenshotNotFound) {
		t.Fatalf("mapMinioErr(NoSuchKey) = %v", err)
	}
	other := mapMinioErr(minio.ErrorResponse{Code: "AccessDenied"})
	if errors.Is(other, ErrScreenshotNotFound) {
		t.Fatalf("mapMinioErr(AccessDenied) = %v", other)
	}
}

type fakeS3Client struct {
	objects      map[string][]byte
	bucketExists bool
	lastBucket   string
	lastKey      string
	getCalls     int
}

func (f *fakeS3Client) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	f.getCalls++
	f.lastBucket = bucket
	f.lastKey = key
	data, ok := f.objects[key]
	if !ok {
		return nil, ErrScreenshotNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeS3Client) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, nil
}
