package publish

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

const contentType = "audio/midi"

var ErrBadURL = errors.New("invalid s3 url")

type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// ParseURL parses s3://bucket/key.
func ParseURL(raw string) (Location, error) {
	var loc Location
	u, err := url.Parse(raw)
	if err != nil {
		return loc, errors.Wrapf(ErrBadURL, "%q: %v", raw, err)
	}
	if u.Scheme != "s3" {
		return loc, errors.Wrapf(ErrBadURL, "%q: scheme must be s3", raw)
	}
	loc.Bucket = u.Host
	loc.Key = strings.TrimPrefix(u.Path, "/")
	if loc.Bucket == "" || loc.Key == "" {
		return loc, errors.Wrapf(ErrBadURL, "%q: need both bucket and key", raw)
	}
	return loc, nil
}

// Uploader is the part of s3manager.Uploader we use.
type Uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

type S3Publisher struct {
	uploader Uploader
}

func NewS3Publisher(region string) (*S3Publisher, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create AWS session")
	}
	return &S3Publisher{uploader: s3manager.NewUploader(sess)}, nil
}

func NewS3PublisherWithUploader(u Uploader) *S3Publisher {
	return &S3Publisher{uploader: u}
}

// Publish uploads body to loc and returns the object URL.
func (p *S3Publisher) Publish(ctx context.Context, loc Location, body io.Reader) (string, error) {
	out, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "could not upload to %s", loc)
	}
	return out.Location, nil
}
