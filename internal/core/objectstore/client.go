package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/time/rate"
)

type Opts struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // empty means AWS S3
	UseSSL    bool
	RateRPS   int // client-side request cap, 0 disables
}

// Client is a thin blob interface over an S3-compatible store: whole
// objects in, whole objects out. The storage layer needs nothing more.
type Client struct {
	mc      *minio.Client
	bucket  string
	region  string
	limiter *rate.Limiter
}

func New(o Opts) (*Client, error) {
	endpoint := o.Endpoint
	if endpoint == "" {
		endpoint = "s3." + o.Region + ".amazonaws.com"
	}
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.AccessKey, o.SecretKey, ""),
		Secure: o.UseSSL,
		Region: o.Region,
	})
	if err != nil {
		return nil, err
	}
	c := &Client{mc: mc, bucket: o.Bucket, region: o.Region}
	if o.RateRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(o.RateRPS), o.RateRPS)
	}
	return c, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// Get reads a whole object. A missing key returns (nil, nil).
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	obj, err := c.mc.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Put writes a whole object, replacing any previous version.
func (c *Client) Put(ctx context.Context, key string, data []byte) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	_, err := c.mc.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

// EnsureBucket creates the bucket when it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	ok, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil || ok {
		return err
	}
	return c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region})
}

// Ping verifies the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	_, err := c.mc.BucketExists(ctx, c.bucket)
	return err
}
