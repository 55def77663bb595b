// Package s3 implements the MediaStore against any S3-compatible object
// store (AWS S3, MinIO, DigitalOcean Spaces).
package s3

import (
	"bytes"
	"context"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"estate/config"
	"estate/internal/domain/service"
	"estate/internal/errors"
)

// Store uploads assets into a single bucket and serves them from a public
// base URL. Object keys keep the caller-supplied folder as a prefix so the
// bucket layout mirrors the media categories.
type Store struct {
	client       *awss3.Client
	uploader     *manager.Uploader
	bucket       string
	publicPrefix string
}

// New creates the S3 media store from configuration.
func New(cfg *config.Config) (service.MediaStore, error) {
	mediaCfg := cfg.Media
	if mediaCfg == nil {
		return nil, errors.New("media configuration is required")
	}
	if mediaCfg.Bucket == "" {
		return nil, errors.New("media bucket is required")
	}
	if mediaCfg.BaseURL == "" {
		return nil, errors.New("media base URL is required")
	}

	region := mediaCfg.Region
	if region == "" {
		region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error
	if mediaCfg.AccessKeyID != "" && mediaCfg.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				mediaCfg.AccessKeyID,
				mediaCfg.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Fall back to the default credential chain.
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(region),
		)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load AWS config")
	}

	var s3Options []func(*awss3.Options)
	if mediaCfg.Endpoint != "" {
		// Custom endpoint for S3-compatible services (MinIO, etc.)
		s3Options = append(s3Options, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(mediaCfg.Endpoint)
			o.UsePathStyle = mediaCfg.UsePathStyle
		})
	}

	client := awss3.NewFromConfig(awsCfg, s3Options...)

	return &Store{
		client:       client,
		uploader:     manager.NewUploader(client),
		bucket:       mediaCfg.Bucket,
		publicPrefix: strings.TrimSuffix(mediaCfg.BaseURL, "/") + "/" + mediaCfg.Bucket + "/",
	}, nil
}

// Upload stores the buffer under a random key inside folder and returns the
// public URL of the object.
func (s *Store) Upload(ctx context.Context, data []byte, folder, filename string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty upload buffer")
	}

	key := folder + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	input := &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType := mime.TypeByExtension(path.Ext(filename)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", errors.Wrapf(err, "upload object %s", key)
	}

	return s.publicPrefix + key, nil
}

// Delete removes the object behind a reference previously produced by
// RefFromURL. Deleting a missing object is not an error.
func (s *Store) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return errors.Wrapf(err, "delete object %s", ref)
	}

	return nil
}

// RefFromURL maps a public URL back to the object key it was served from.
// URLs outside the managed host return false so foreign assets are never
// targeted for deletion.
func (s *Store) RefFromURL(url string) (string, bool) {
	ref, ok := strings.CutPrefix(url, s.publicPrefix)
	if !ok || ref == "" {
		return "", false
	}

	return ref, true
}
