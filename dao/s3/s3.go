// Package s3 stores post images in an S3 compatible bucket, such as the
// platform's own S3 endpoint.
package s3

import (
	"context"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"

	"supasocial/models"
)

type Config struct {
	Region          string
	Endpoint        string // empty for AWS itself
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string // prefix public object URLs are built from
}

// ErrObjectExists is returned instead of overwriting an existing key.
var ErrObjectExists = errors.New("s3: object already exists")

type objectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Storage struct {
	api           objectAPI
	bucket        string
	publicBaseURL string
}

func New(ctx context.Context, c Config) (*Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKeyID,
			c.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "s3:New: load config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := c.PublicBaseURL
	if base == "" {
		base = "https://" + c.Bucket + ".s3." + c.Region + ".amazonaws.com"
	}
	return newStorage(client, c.Bucket, base), nil
}

func newStorage(api objectAPI, bucket, publicBaseURL string) *Storage {
	return &Storage{api: api, bucket: bucket, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Upload refuses a key that already exists. The check and the put are two
// requests, so two uploads racing on one key can still both succeed.
func (s *Storage) Upload(ctx context.Context, path string, file *models.ImageFile) error {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	var notFound *types.NotFound
	switch {
	case err == nil:
		return errors.Wrapf(ErrObjectExists, "s3:Upload: %s", path)
	case !errors.As(err, &notFound):
		return errors.Wrap(err, "s3:Upload: head object")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
		Body:   file.Reader(),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	_, err = s.api.PutObject(ctx, input)
	return errors.Wrap(err, "s3:Upload: put object")
}

func (s *Storage) PublicURL(path string) string {
	segs := strings.Split(path, "/")
	for i := range segs {
		segs[i] = url.PathEscape(segs[i])
	}
	return s.publicBaseURL + "/" + strings.Join(segs, "/")
}
