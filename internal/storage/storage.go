package storage

import (
	"fmt"
	"io"
	"path"
	"strings"

	"focus-arc/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

type Client struct {
	backend      StorageProvider
	bucketAlbums string
	bucketAudio  string
}

func New(cfg *config.Config) (*Client, error) {
	var backend StorageProvider

	if cfg.Storage.Provider == "s3" {
		// Path-style addressing keeps B2 and MinIO endpoints working
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		if cfg.Storage.Endpoint != "" {
			s3Config.Endpoint = aws.String(cfg.Storage.Endpoint)
		}
		sess, err := session.NewSession(s3Config)
		if err != nil {
			return nil, fmt.Errorf("storage: s3 session: %w", err)
		}
		backend = NewS3Provider(sess)
	} else {
		backend = NewLocalProvider(cfg.Storage.LocalRoot)
	}

	return NewWithProvider(backend, cfg.Storage.BucketAlbums, cfg.Storage.BucketAudio), nil
}

// NewWithProvider wires a client over an explicit backend.
func NewWithProvider(backend StorageProvider, bucketAlbums, bucketAudio string) *Client {
	return &Client{
		backend:      backend,
		bucketAlbums: bucketAlbums,
		bucketAudio:  bucketAudio,
	}
}

// --- Album Summaries ---

func (c *Client) SaveAlbum(key string, body io.ReadSeeker) error {
	return c.backend.Put(c.bucketAlbums, key, body, "application/json", "no-cache")
}

func (c *Client) LoadAlbum(key string) ([]byte, error) {
	obj, err := c.backend.Get(c.bucketAlbums, key)
	if err != nil {
		return nil, err
	}
	defer obj.Body.Close()
	return io.ReadAll(obj.Body)
}

func (c *Client) ListAlbums() ([]string, error) {
	keys, err := c.backend.List(c.bucketAlbums, "")
	if err != nil {
		return nil, err
	}

	var albums []string
	for _, key := range keys {
		// Published copies live under <slug>/ and are not summaries of their own
		if strings.HasSuffix(key, ".json") && !strings.Contains(key, "/") {
			albums = append(albums, key)
		}
	}
	return albums, nil
}

// Location describes where an album key ends up, for user-facing messages.
func (c *Client) Location(key string) string {
	return c.backend.Describe(c.bucketAlbums, key)
}

// --- Publishing ---

func (c *Client) UploadAudio(key string, body io.ReadSeeker, contentType string) error {
	return c.backend.Put(c.bucketAudio, key, body, contentType, "public, max-age=31536000")
}

func (c *Client) ListAudio(prefix string) ([]string, error) {
	return c.backend.List(c.bucketAudio, prefix)
}

func (c *Client) DeleteAudio(key string) error {
	return c.backend.Delete(c.bucketAudio, key)
}

func (c *Client) AudioLocation(key string) string {
	return c.backend.Describe(c.bucketAudio, key)
}

// IsPublished reports whether anything already sits under prefix in the audio bucket.
func (c *Client) IsPublished(prefix string) (bool, error) {
	empty, err := c.backend.IsEmpty(c.bucketAudio, prefix)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// ContentType guesses the upload content type from the key's extension.
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
