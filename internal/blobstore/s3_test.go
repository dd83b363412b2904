package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubS3(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPre := newS3PresignClient
	origPut := putObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		newS3PresignClient = origPre
		putObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func testS3Config() S3Config {
	return S3Config{
		Bucket:       "vault",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		URLExpiry:    time.Hour,
	}
}

func TestNewS3Store_AppliesRegionCredentialsAndEndpoint(t *testing.T) {
	stubS3(t)

	var region string
	var hasCreds bool
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		region = lo.Region
		hasCreds = lo.Credentials != nil
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	_, err := NewS3Store(context.Background(), testS3Config())
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", region)
	assert.True(t, hasCreds)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Store_Errors(t *testing.T) {
	stubS3(t)

	cfg := testS3Config()
	cfg.Bucket = ""
	_, err := NewS3Store(context.Background(), cfg)
	assert.ErrorContains(t, err, "bucket is required")

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}
	_, err = NewS3Store(context.Background(), testS3Config())
	assert.ErrorContains(t, err, "load aws config")
}

func TestS3Store_PutUploadsThenPresigns(t *testing.T) {
	stubS3(t)

	var gotPut *s3.PutObjectInput
	var body []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotPut = in
		var err error
		body, err = io.ReadAll(in.Body)
		require.NoError(t, err)
		return &s3.PutObjectOutput{}, nil
	}

	var presignOpts s3.PresignOptions
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		for _, fn := range optFns {
			fn(&presignOpts)
		}
		assert.Equal(t, "vault", *in.Bucket)
		assert.Equal(t, "2025/clip.mp4", *in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/vault/2025/clip.mp4?X-Amz-Signature=abc"}, nil
	}

	s, err := NewS3Store(context.Background(), testS3Config())
	require.NoError(t, err)

	ref, err := s.Put(context.Background(), "2025/clip.mp4", "video/mp4", []byte("movie"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000/vault/2025/clip.mp4?X-Amz-Signature=abc", ref)
	require.NotNil(t, gotPut)
	assert.Equal(t, "vault", *gotPut.Bucket)
	assert.Equal(t, "video/mp4", *gotPut.ContentType)
	assert.Equal(t, int64(5), *gotPut.ContentLength)
	assert.Equal(t, "movie", string(body))
	assert.Equal(t, time.Hour, presignOpts.Expires)
}

func TestS3Store_PutErrors(t *testing.T) {
	stubS3(t)
	s, err := NewS3Store(context.Background(), testS3Config())
	require.NoError(t, err)

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	}
	_, err = s.Put(context.Background(), "k", "image/png", []byte("x"))
	assert.ErrorContains(t, err, "put s3://vault/k")

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("clock skew")
	}
	_, err = s.Put(context.Background(), "k", "image/png", []byte("x"))
	assert.ErrorContains(t, err, "presign s3://vault/k")
}
