package storage

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Provider talks to any S3-compatible endpoint (AWS, Backblaze B2, MinIO).
type S3Provider struct {
	api s3iface.S3API
}

func NewS3Provider(sess *session.Session) *S3Provider {
	return &S3Provider{api: s3.New(sess)}
}

// NewS3ProviderWithAPI is used by tests to inject a fake client.
func NewS3ProviderWithAPI(api s3iface.S3API) *S3Provider {
	return &S3Provider{api: api}
}

func (s *S3Provider) List(bucket, prefix string) ([]string, error) {
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	err := s.api.ListObjectsV2Pages(input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, item := range page.Contents {
			keys = append(keys, *item.Key)
		}
		return true
	})
	return keys, err
}

func (s *S3Provider) Get(bucket, key string) (*FileObject, error) {
	out, err := s.api.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return &FileObject{
		Body:          out.Body,
		ContentType:   aws.StringValue(out.ContentType),
		ContentLength: aws.Int64Value(out.ContentLength),
		LastModified:  aws.TimeValue(out.LastModified),
	}, nil
}

func (s *S3Provider) Put(bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}
	_, err := s.api.PutObject(input)
	return err
}

func (s *S3Provider) Delete(bucket, key string) error {
	_, err := s.api.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Provider) IsEmpty(bucket, prefix string) (bool, error) {
	out, err := s.api.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int64(1),
	})
	if err != nil {
		return false, err
	}
	return len(out.Contents) == 0, nil
}

func (s *S3Provider) Describe(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}
