// Package storage keeps auction, avatar and chat images in a Firebase
// Storage bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const MaxImageBytes = 5 << 20

type Kind string

const (
	KindAuction Kind = "auction"
	KindAvatar  Kind = "avatar"
	KindChat    Kind = "chat"
)

var (
	ErrUnsupportedKind = errors.New("unsupported image kind")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image is too large")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var prefixes = map[Kind]string{
	KindAuction: "auctions",
	KindAvatar:  "avatars",
	KindChat:    "chats",
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := prefixes[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
	return k, nil
}

// ObjectPath returns a fresh object name for an upload by owner.
func ObjectPath(kind Kind, owner, contentType string) (string, error) {
	prefix, ok := prefixes[kind]
	if !ok {
		return "", ErrUnsupportedKind
	}
	ext, ok := extensions[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return fmt.Sprintf("%s/%s/%s%s", prefix, owner, uuid.NewString(), ext), nil
}

// DownloadURL is the token-protected URL Firebase clients use to fetch an object.
func DownloadURL(bucket, objectPath, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(objectPath), token)
}

type Stored struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type ImageStore struct {
	client *gcs.Client
	bucket string
}

func NewImageStore(ctx context.Context, bucket, credentialsFile string) (*ImageStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &ImageStore{client: client, bucket: bucket}, nil
}

func (s *ImageStore) Close() error {
	return s.client.Close()
}

// Upload streams r into a new object. Bodies over MaxImageBytes are rejected
// and the partial object is discarded.
func (s *ImageStore) Upload(ctx context.Context, kind Kind, owner, contentType string, r io.Reader) (*Stored, error) {
	path, err := ObjectPath(kind, owner, contentType)
	if err != nil {
		return nil, err
	}
	token := uuid.NewString()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	n, err := io.Copy(w, io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		cancel()
		_ = w.Close()
		return nil, err
	}
	if n > MaxImageBytes {
		cancel()
		_ = w.Close()
		return nil, ErrTooLarge
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &Stored{URL: DownloadURL(s.bucket, path, token), Path: path}, nil
}

// Delete removes the object at path. Missing objects are not an error.
func (s *ImageStore) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}
