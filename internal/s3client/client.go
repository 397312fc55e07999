package s3client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	appConfig "vimeomover/config"
	"vimeomover/internal/models"
	"vimeomover/pkg/utils"
)

const partSize = 16 * 1024 * 1024

// Client streams transfer items into an S3 bucket under a key prefix.
type Client struct {
	s3Client *s3.Client
	uploader *manager.Uploader
	config   *appConfig.Config
}

func New(cfg *appConfig.Config) (*Client, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is not configured")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	uploader := manager.NewUploader(s3Client, func(u *manager.Uploader) {
		u.PartSize = partSize
		u.Concurrency = 1
	})

	return &Client{
		s3Client: s3Client,
		uploader: uploader,
		config:   cfg,
	}, nil
}

func (c *Client) Name() string {
	return "s3://" + c.buildRemotePath(c.config.BucketName, c.config.DestinationPath)
}

// Setup checks that the bucket exists and the credentials can reach it.
func (c *Client) Setup(ctx context.Context) error {
	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.config.BucketName),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", c.config.BucketName, describeAPIError(err))
	}
	return nil
}

// Write streams r to destinationPath/item.FileName. The body is uploaded in
// parts so it never has to fit in memory.
func (c *Client) Write(ctx context.Context, r io.Reader, item models.ResolvedItem) error {
	remotePath := c.buildRemotePath(c.config.DestinationPath, item.FileName)

	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(remotePath),
		Body:        r,
		ContentType: aws.String(utils.DetectContentType(item.FileName)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", describeAPIError(err))
	}

	return nil
}

func (c *Client) buildRemotePath(destinationPath, filename string) string {
	if destinationPath == "" {
		return filename
	}

	destinationPath = strings.TrimPrefix(destinationPath, "/")

	if !strings.HasSuffix(destinationPath, "/") {
		destinationPath += "/"
	}

	return destinationPath + filename
}

// describeAPIError surfaces the S3 error code next to the wrapped error.
func describeAPIError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", apiErr.ErrorCode(), err)
	}
	return err
}
