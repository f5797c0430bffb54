package predictor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/zenscore/internal/server/config"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, []byte(testArtifact), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	cfg := &sc.Config{ModelPath: path}
	m, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(m.FeatureNames()) != 2 {
		t.Fatalf("unexpected model: %v", m.FeatureNames())
	}
}

func TestLoad_FromFile_Missing(t *testing.T) {
	cfg := &sc.Config{ModelPath: filepath.Join(t.TempDir(), "absent.json")}
	if _, err := Load(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for missing artifact file")
	}
}

func TestLoad_FromS3(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origGet := getObject
	defer func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		getObject = origGet
	}()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}

	var gotBucket, gotKey string
	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(testArtifact))}, nil
	}

	cfg := &sc.Config{
		ModelFromS3: true,
		ModelPath:   "models/gbm.json",
		S3Bucket:    "artifacts",
	}
	m, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if gotBucket != "artifacts" || gotKey != "models/gbm.json" {
		t.Fatalf("unexpected object request: bucket=%q key=%q", gotBucket, gotKey)
	}
	if len(m.FeatureNames()) != 2 {
		t.Fatalf("unexpected model: %v", m.FeatureNames())
	}
}

func TestLoad_FromS3_GetObjectError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origGet := getObject
	defer func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		getObject = origGet
	}()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return nil, errors.New("backend down")
	}

	cfg := &sc.Config{ModelFromS3: true, ModelPath: "k", S3Bucket: "b"}
	if _, err := Load(context.Background(), cfg); err == nil {
		t.Fatalf("expected error when GetObject fails")
	}
}
