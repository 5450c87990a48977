package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"gather.link/configs/configslog"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaServiceError is a typed service-level error.
type MediaServiceError string

func (e MediaServiceError) Error() string { return string(e) }

const (
	ErrMediaInvalidInput MediaServiceError = "invalid media request"
	ErrMediaPresignFail  MediaServiceError = "could not presign URL"
)

const presignTTL = 5 * time.Minute

// S3Presigner is the slice of the S3 presign client the media service uses.
type S3Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// IMediaService issues presigned S3 URLs for event images; image bytes
// never pass through the application.
type IMediaService interface {
	CreateUploadURL(ctx context.Context, fileName, contentType string) (*UploadTicket, error)
	CreateReadURL(ctx context.Context, key string) (string, error)
}

// UploadTicket is a presigned PUT plus the object key the caller should
// store on the event once the upload completes.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

type MediaService struct {
	presigner S3Presigner
	bucket    string
}

func NewMediaService(presigner S3Presigner, bucket string) IMediaService {
	return &MediaService{presigner: presigner, bucket: bucket}
}

// CreateUploadURL presigns a PUT for a new event image. Keys are
// uuid-prefixed so concurrent uploads of identically named files never
// collide.
func (s *MediaService) CreateUploadURL(ctx context.Context, fileName, contentType string) (*UploadTicket, error) {
	fileName = path.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, fmt.Errorf("%w: file name is required", ErrMediaInvalidInput)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only image uploads are accepted", ErrMediaInvalidInput)
	}

	key := fmt.Sprintf("event-images/%s-%s", uuid.NewString(), fileName)
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		configslog.Log.Error("MediaService: presign PUT failed", zap.String("key", key), zap.Error(err))
		return nil, ErrMediaPresignFail
	}
	return &UploadTicket{UploadURL: req.URL, Key: key}, nil
}

// CreateReadURL presigns a GET for a stored event image.
func (s *MediaService) CreateReadURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: object key is required", ErrMediaInvalidInput)
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		configslog.Log.Error("MediaService: presign GET failed", zap.String("key", key), zap.Error(err))
		return "", ErrMediaPresignFail
	}
	return req.URL, nil
}

var _ IMediaService = (*MediaService)(nil)
