package predictor

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/zenscore/internal/server/config"
)

// seams for testing the S3 path without a live backend
var (
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx, optFns...)
	}

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in)
	}
)

// Load reads the model artifact named by the config: an object in the
// S3-compatible backend when ModelFromS3 is set, a local file otherwise.
// Called once at startup; the returned model is immutable.
func Load(ctx context.Context, cfg *sc.Config) (*GBM, error) {
	if cfg.ModelFromS3 {
		return loadFromS3(ctx, cfg)
	}
	return loadFromFile(cfg.ModelPath)
}

func loadFromFile(path string) (*GBM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening model artifact: %w", err)
	}
	defer f.Close()

	return NewGBM(f)
}

func loadFromS3(ctx context.Context, cfg *sc.Config) (*GBM, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
	})

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(cfg.S3Bucket),
		Key:    aws.String(cfg.ModelPath),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching model artifact: %w", err)
	}
	defer out.Body.Close()

	return NewGBM(out.Body)
}
