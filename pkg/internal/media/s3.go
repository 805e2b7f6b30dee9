package media

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// S3Store talks to any S3 compatible bucket, Cloudflare R2 included.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(ctx context.Context) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("media.access_key"),
			viper.GetString("media.secret_key"),
			"",
		)),
		config.WithRegion(viper.GetString("media.region")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load media storage config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := viper.GetString("media.endpoint"); len(endpoint) > 0 {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = viper.GetBool("media.path_style")
	})

	return &S3Store{
		client: client,
		bucket: viper.GetString("media.bucket"),
	}, nil
}

func (v *S3Store) Delete(ctx context.Context, key string) error {
	_, err := v.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("unable to delete object %s: %v", key, err)
	}
	return nil
}
