package aws

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

// MediaBucket returns the bucket for uploaded report files, empty when
// uploads should stay on local disk.
func MediaBucket() string {
	return os.Getenv("S3_MEDIA_BUCKET")
}

func S3UploadObject(key string, body io.Reader, contentType string) (string, error) {
	bucket := MediaBucket()
	client := GetS3Client()
	if client == nil {
		return "", fmt.Errorf("could not initialize s3 client")
	}
	_, err := client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Error uploading object [%s]: %s\n", key, err.Error())
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
