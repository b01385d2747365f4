package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
)

// Putter is the slice of the S3 API the archiver needs.
type Putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a client with static credentials. A custom endpoint
// switches to path-style addressing for S3-compatible stores.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

type S3Archiver struct {
	client Putter
	bucket string
}

func NewS3Archiver(client Putter, bucket string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket}
}

type document struct {
	Cutoff   calendar.DateKey  `json:"cutoff"`
	PurgedAt time.Time         `json:"purged_at"`
	Count    int               `json:"count"`
	Bookings []booking.Booking `json:"bookings"`
}

// Archive writes the purged bookings as one JSON object and returns its key.
func (a *S3Archiver) Archive(
	ctx context.Context,
	cutoff calendar.DateKey,
	purgedAt time.Time,
	bookings []booking.Booking,
) (string, error) {

	body, err := json.Marshal(document{
		Cutoff:   cutoff,
		PurgedAt: purgedAt,
		Count:    len(bookings),
		Bookings: bookings,
	})
	if err != nil {
		return "", fmt.Errorf("archive encode: %w", err)
	}

	key := fmt.Sprintf(
		"purges/%s/%s-%s.json",
		cutoff.String(),
		purgedAt.UTC().Format("20060102T150405Z"),
		uuid.NewString(),
	)

	if _, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", fmt.Errorf("archive upload: %w", err)
	}

	return key, nil
}
