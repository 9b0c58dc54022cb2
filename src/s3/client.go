// Package s3 publishes generated files to a bucket.
package s3

import (
	"context"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Client struct {
	client putObjectAPI
	sugar  *zap.SugaredLogger
}

func NewClient(sugar *zap.SugaredLogger, cfg aws.Config) *Client {
	return &Client{
		client: s3.NewFromConfig(cfg),
		sugar:  sugar,
	}
}

func (c *Client) PutFile(ctx context.Context, reader io.Reader, bucket, key string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := c.client.PutObject(ctx, input)
	return err
}

// UploadDir puts every regular file under dir to bucket, keyed by prefix
// joined with the file's slash-separated path relative to dir. Relative
// paths listed in skip are left out. It returns the number of uploaded files.
func (c *Client) UploadDir(ctx context.Context, dir, bucket, prefix string, skip ...string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if slices.Contains(skip, rel) {
			c.sugar.Debugf("Skipping %s", p)
			return nil
		}
		key := path.Join(prefix, rel)
		file, err := os.Open(p)
		if err != nil {
			return err
		}
		defer file.Close()
		c.sugar.Debugf("Uploading %s to s3://%s/%s", p, bucket, key)
		if err := c.PutFile(ctx, file, bucket, key); err != nil {
			return err
		}
		count++
		return nil
	})
	if err == nil {
		c.sugar.Infof("Uploaded %d files from %s to s3://%s/%s", count, dir, bucket, prefix)
	}
	return count, err
}
