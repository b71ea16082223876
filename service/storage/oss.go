package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/bennypn/ai-kop-indosat/config"
)

// BlobStore uploads a blob and returns its public URL.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte) (string, error)
}

// OSSStore stores rendered page images on Alibaba Cloud OSS.
type OSSStore struct {
	client   *oss.Client
	bucket   string
	endpoint string
}

func NewOSSStore() *OSSStore {
	cfg := &oss.Config{
		Region: oss.Ptr(config.Cfg.OSS.Region),
		CredentialsProvider: credentials.NewStaticCredentialsProvider(
			config.Cfg.OSS.AccessKeyID,
			config.Cfg.OSS.AccessKeySecret,
		),
	}
	return &OSSStore{
		client:   oss.NewClient(cfg),
		bucket:   config.Cfg.OSS.BucketName,
		endpoint: config.Cfg.OSS.Endpoint,
	}
}

func (s *OSSStore) Put(ctx context.Context, path string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(s.bucket),
		Key:         oss.Ptr(path),
		Body:        bytes.NewReader(data),
		ContentType: oss.Ptr("image/png"),
		Acl:         oss.ObjectACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %v", path, err)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, path), nil
}
