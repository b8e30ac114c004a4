package viewsettings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.uber.org/zap"

	"read-frame/pkg/logging"
)

// S3Store keeps one JSON object per book in an S3 bucket so that settings
// follow the reader across devices.
type S3Store struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Store wraps an existing S3 client.
func NewS3Store(client s3iface.S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// NewS3StoreFromEnv builds a client from AWS_DEFAULT_REGION,
// AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
func NewS3StoreFromEnv(bucket, prefix string) (*S3Store, error) {
	region := os.Getenv("AWS_DEFAULT_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if region == "" || accessKey == "" || secretKey == "" {
		return nil, errors.New("missing one or more required environment variables: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")
	}
	if bucket == "" {
		return nil, errors.New("s3 settings store: empty bucket")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return NewS3Store(s3.New(sess), bucket, prefix), nil
}

func (s *S3Store) objectKey(bookKey string) string {
	return path.Join(s.prefix, bookKey+".json")
}

// Get downloads the record for bookKey. A missing object yields defaults.
func (s *S3Store) Get(bookKey string) (ViewSettings, error) {
	if bookKey == "" {
		return ViewSettings{}, ErrInvalidKey
	}

	key := s.objectKey(bookKey)
	result, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return Defaults(), nil
		}
		return ViewSettings{}, fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer result.Body.Close()

	var vs ViewSettings
	if err := json.NewDecoder(result.Body).Decode(&vs); err != nil {
		logging.Logger().Warn("malformed view settings object, using defaults",
			zap.String("bucket", s.bucket), zap.String("key", key), zap.Error(err))
		return Defaults(), nil
	}
	vs.Normalize()
	return vs, nil
}

// Set uploads the full record for bookKey.
func (s *S3Store) Set(bookKey string, vs ViewSettings) error {
	if bookKey == "" {
		return ErrInvalidKey
	}

	data, err := json.Marshal(vs)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	key := s.objectKey(bookKey)
	_, err = s.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
