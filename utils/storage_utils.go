package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Storage uploads item and profile images to an S3-compatible object store and
// hands back their public URLs.
type Storage struct {
	bucket   string
	endpoint string
	client   *s3.S3
}

func NewStorage(accessKey, secretKey, bucket, region, endpoint string) (*Storage, error) {
	if bucket == "" || endpoint == "" {
		return nil, fmt.Errorf("storage: bucket and endpoint are required")
	}
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey, secretKey, "",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &Storage{bucket: bucket, endpoint: endpoint, client: s3.New(sess)}, nil
}

func (s *Storage) UploadFile(file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to storage: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, filePath), nil
}
