package storage

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

func TestLocalClientAlbums(t *testing.T) {
	root := t.TempDir()
	c := NewWithProvider(NewLocalProvider(root), "", "published")

	if err := c.SaveAlbum("deep-work-2026-10-18.json", strings.NewReader(`{"name":"Deep Work"}`)); err != nil {
		t.Fatalf("SaveAlbum: %v", err)
	}
	if err := c.UploadAudio("deep-work/01.mp3", bytes.NewReader([]byte("ID3")), "audio/mpeg"); err != nil {
		t.Fatalf("UploadAudio: %v", err)
	}

	albums, err := c.ListAlbums()
	if err != nil {
		t.Fatalf("ListAlbums: %v", err)
	}
	if len(albums) != 1 || albums[0] != "deep-work-2026-10-18.json" {
		t.Errorf("ListAlbums = %v", albums)
	}

	data, err := c.LoadAlbum("deep-work-2026-10-18.json")
	if err != nil {
		t.Fatalf("LoadAlbum: %v", err)
	}
	if string(data) != `{"name":"Deep Work"}` {
		t.Errorf("LoadAlbum = %s", data)
	}

	published, err := c.IsPublished("deep-work")
	if err != nil || !published {
		t.Errorf("IsPublished(deep-work) = %v, %v; want true", published, err)
	}
	published, err = c.IsPublished("other")
	if err != nil || published {
		t.Errorf("IsPublished(other) = %v, %v; want false", published, err)
	}

	if err := c.DeleteAudio("deep-work/01.mp3"); err != nil {
		t.Fatalf("DeleteAudio: %v", err)
	}
	keys, _ := c.ListAudio("deep-work")
	if len(keys) != 0 {
		t.Errorf("ListAudio after delete = %v", keys)
	}
}

func TestLocalListMissingBucket(t *testing.T) {
	p := NewLocalProvider(t.TempDir())
	keys, err := p.List("nope", "")
	if err != nil || len(keys) != 0 {
		t.Errorf("List(missing) = %v, %v", keys, err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a/b.MP3":    "audio/mpeg",
		"x.wav":      "audio/wav",
		"x.flac":     "audio/flac",
		"album.json": "application/json",
		"notes.txt":  "application/octet-stream",
	}
	for in, want := range tests {
		if got := ContentType(in); got != want {
			t.Errorf("ContentType(%s) = %s; want %s", in, got, want)
		}
	}
}

// fakeS3 keeps objects in memory; unimplemented calls panic via the nil embed.
type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (f *fakeS3) PutObject(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	data := f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)]
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *fakeS3) matching(bucket, prefix string) []*s3.Object {
	var out []*s3.Object
	for k := range f.objects {
		b, key, _ := strings.Cut(k, "/")
		if b == bucket && strings.HasPrefix(key, prefix) {
			out = append(out, &s3.Object{Key: aws.String(key)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].Key < *out[j].Key })
	return out
}

func (f *fakeS3) ListObjectsV2Pages(in *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool) error {
	fn(&s3.ListObjectsV2Output{Contents: f.matching(aws.StringValue(in.Bucket), aws.StringValue(in.Prefix))}, true)
	return nil
}

func (f *fakeS3) ListObjectsV2(in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	return &s3.ListObjectsV2Output{Contents: f.matching(aws.StringValue(in.Bucket), aws.StringValue(in.Prefix))}, nil
}

func TestS3Client(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	c := NewWithProvider(NewS3ProviderWithAPI(fake), "albums", "audio")

	if err := c.SaveAlbum("a.json", strings.NewReader("{}")); err != nil {
		t.Fatalf("SaveAlbum: %v", err)
	}
	if _, ok := fake.objects["albums/a.json"]; !ok {
		t.Errorf("album not written to albums bucket: %v", fake.objects)
	}

	albums, err := c.ListAlbums()
	if err != nil || len(albums) != 1 {
		t.Errorf("ListAlbums = %v, %v", albums, err)
	}

	published, err := c.IsPublished("a/")
	if err != nil || published {
		t.Errorf("IsPublished before upload = %v, %v", published, err)
	}
	if err := c.UploadAudio("a/01.mp3", bytes.NewReader([]byte("x")), "audio/mpeg"); err != nil {
		t.Fatal(err)
	}
	published, _ = c.IsPublished("a/")
	if !published {
		t.Error("IsPublished after upload = false")
	}

	if got := c.AudioLocation("a/01.mp3"); got != "s3://audio/a/01.mp3" {
		t.Errorf("AudioLocation = %s", got)
	}
}
