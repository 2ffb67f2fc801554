package banner

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"artcc_backend/internals/configs"
)

const (
	// MaxUploadSize is enforced by controllers before the file reaches us.
	MaxUploadSize = 5 * 1024 * 1024

	maxWidth    = 1600
	maxHeight   = 900
	webpQuality = 80
)

// Uploader stores event banners and hands back a public URL.
type Uploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// OSSUploader re-encodes banners to webp and pushes them to an OSS
// bucket under banners/.
type OSSUploader struct {
	bucket   *oss.Bucket
	endpoint string
}

func NewOSSUploaderFromEnv() (*OSSUploader, error) {
	endpoint := configs.OSSEndpoint
	keyID := configs.OSSAccessKey
	secret := configs.OSSSecretKey
	bucketName := configs.OSSBucket
	if endpoint == "" || keyID == "" || secret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: missing OSS_ENDPOINT / OSS_ACCESS_KEY_ID / OSS_ACCESS_KEY_SECRET / OSS_BUCKET")
	}

	client, err := oss.New(endpoint, keyID, secret)
	if err != nil {
		return nil, fmt.Errorf("oss: new client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss: open bucket %q: %w", bucketName, err)
	}
	return &OSSUploader{bucket: bucket, endpoint: endpoint}, nil
}

// Upload decodes the image (jpeg, png or webp), bounds it to
// maxWidth x maxHeight keeping aspect, re-encodes as webp and uploads
// with a unique key.
func (u *OSSUploader) Upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", fmt.Errorf("banner: file too large (%d bytes)", fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("banner: open upload: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("banner: read upload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("banner: decode image: %w", err)
	}
	img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("banner: encode webp: %w", err)
	}

	key := objectKey(fh.Filename)
	err = u.bucket.PutObject(key, bytes.NewReader(buf.Bytes()),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"))
	if err != nil {
		return "", fmt.Errorf("banner: put object: %w", err)
	}
	return u.publicURL(key), nil
}

func (u *OSSUploader) Delete(ctx context.Context, publicURL string) error {
	key, err := keyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	if err := u.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("banner: delete object: %w", err)
	}
	return nil
}

func (u *OSSUploader) publicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(u.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", u.bucket.BucketName, host, key)
}

func keyFromPublicURL(publicURL string) (string, error) {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("banner: parse url: %w", err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("banner: url %q has no object key", publicURL)
	}
	return key, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func objectKey(original string) string {
	base := strings.TrimSuffix(original, "."+ext(original))
	safe := unsafeChars.ReplaceAllString(base, "_")
	if len(safe) > 60 {
		safe = safe[:60]
	}
	return fmt.Sprintf("banners/%s-%s-%s.webp",
		time.Now().UTC().Format("20060102"), uuid.NewString(), safe)
}

func ext(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		return filename[i+1:]
	}
	return ""
}
