package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ReceiptSink archives a JSON receipt per booking in an S3-compatible bucket.
type ReceiptSink struct {
	client objectPutter
	bucket string
}

type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

func NewReceiptSink(opts S3Options) (*ReceiptSink, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	s3opts := s3.Options{
		Region:       opts.Region,
		UsePathStyle: true,
	}
	if opts.AccessKey != "" {
		s3opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		)
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return &ReceiptSink{client: s3.New(s3opts), bucket: opts.Bucket}, nil
}

func (s *ReceiptSink) Name() string { return "s3" }

func ReceiptKey(msg Message) string {
	return fmt.Sprintf("receipts/%s/booking-%d.json", msg.Booking.Date, msg.Booking.ID)
}

func (s *ReceiptSink) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(eventFor(msg))
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(ReceiptKey(msg)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put receipt: %w", err)
	}
	return nil
}
