package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	sc "github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// exportURLValidity is how long the download link of an export stays valid.
const exportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportDocument is the JSON file written to the bucket.
type ExportDocument struct {
	Owner      string         `json:"owner"`
	ExportedAt time.Time      `json:"exportedAt"`
	Tasks      []*models.Task `json:"tasks"`
}

// ExportService snapshots a user's tasks into the S3-compatible bucket and
// hands back a short-lived download link.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	log         logging.Logger
	now         func() time.Time
}

func NewExportService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config, log logging.Logger) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		log:         log.With("module", "export"),
		now:         time.Now,
	}
}

// ExportKey returns the object key for an export of userID's tasks made at t.
func ExportKey(userID string, t time.Time) string {
	return fmt.Sprintf("exports/%s/%d/%02d/%02d/%v.json", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *ExportService) getClients(ctx context.Context) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, newS3PresignClient(client), nil
}

// Export uploads the caller's tasks (newest first) as one JSON document and
// returns a presigned GET URL for it. Object storage failures are
// ErrStoreUnavailable.
func (s *ExportService) Export(ctx context.Context, callerID string) (string, error) {
	tasks, err := s.repomanager.Tasks(s.db).FindByOwner(ctx, callerID, models.TaskQuery{Sort: models.SortCreatedDesc})
	if err != nil {
		return "", fmt.Errorf("error loading tasks: %w", err)
	}

	now := s.now().UTC()
	body, err := json.Marshal(ExportDocument{Owner: callerID, ExportedAt: now, Tasks: tasks})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	client, presignClient, err := s.getClients(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	bucket := s.config.S3Bucket
	key := ExportKey(callerID, now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", fmt.Errorf("%w: upload export: %v", common.ErrStoreUnavailable, err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportURLValidity))
	if err != nil {
		return "", fmt.Errorf("%w: presign export: %v", common.ErrStoreUnavailable, err)
	}

	s.log.Info(ctx, "tasks exported", "owner", callerID, "key", key, "count", len(tasks))
	return req.URL, nil
}
