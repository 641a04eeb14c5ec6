package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/errgroup"

	"github.com/MinoPlay/mexicano/models"
)

const (
	defaultKeyPrefix       = "tournaments"
	defaultListConcurrency = 8
	jsonContentType        = "application/json"
)

type R2TournamentStoreConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
	// Endpoint overrides the Cloudflare endpoint derived from AccountID, for
	// any other S3 compatible service.
	Endpoint        string
	KeyPrefix       string
	ListConcurrency int
}

// PublicURLProvider is implemented by stores whose records are also
// reachable over plain HTTPS.
type PublicURLProvider interface {
	PublicURL(date string) string
}

// objectAPI is the part of *s3.Client the store uses.
type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type r2TournamentStore struct {
	client          objectAPI
	bucketName      string
	keyPrefix       string
	publicBaseURL   string
	listConcurrency int
}

// NewR2TournamentStore stores each tournament as one JSON object,
// <prefix>/<date>.json, in a Cloudflare R2 (or other S3 compatible) bucket.
func NewR2TournamentStore(ctx context.Context, cfg R2TournamentStoreConfig) (TournamentStore, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" {
		return nil, errors.New("invalid R2 configuration: access key id, secret access key and bucket name are required")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		if cfg.AccountID == "" {
			return nil, errors.New("invalid R2 configuration: account id or endpoint is required")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return newR2TournamentStore(client, cfg), nil
}

func newR2TournamentStore(client objectAPI, cfg R2TournamentStoreConfig) *r2TournamentStore {
	prefix := strings.Trim(cfg.KeyPrefix, "/")
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	concurrency := cfg.ListConcurrency
	if concurrency <= 0 {
		concurrency = defaultListConcurrency
	}
	return &r2TournamentStore{
		client:          client,
		bucketName:      cfg.BucketName,
		keyPrefix:       prefix,
		publicBaseURL:   cfg.PublicBaseURL,
		listConcurrency: concurrency,
	}
}

func (s *r2TournamentStore) objectKey(date string) string {
	return path.Join(s.keyPrefix, date+".json")
}

// dateFromKey extracts the tournament date from a key of the form
// <prefix>/<YYYY-MM-DD>.json. Nested keys and other file names are rejected.
func (s *r2TournamentStore) dateFromKey(key string) (string, bool) {
	name, ok := strings.CutPrefix(key, s.keyPrefix+"/")
	if !ok || strings.Contains(name, "/") {
		return "", false
	}
	date, ok := strings.CutSuffix(name, ".json")
	if !ok {
		return "", false
	}
	if _, err := models.ParseDate(date); err != nil {
		return "", false
	}
	return date, true
}

func (s *r2TournamentStore) List(ctx context.Context) ([]models.TournamentMeta, error) {
	var dates []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(s.keyPrefix + "/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in R2 (prefix: %s): %w", s.keyPrefix, err)
		}
		for _, obj := range page.Contents {
			if date, ok := s.dateFromKey(aws.ToString(obj.Key)); ok {
				dates = append(dates, date)
			}
		}
	}

	loaded := make([]*models.TournamentMeta, len(dates))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.listConcurrency)
	for i, date := range dates {
		g.Go(func() error {
			t, err := s.Load(gCtx, date)
			if errors.Is(err, ErrObjectNotFound) {
				// deleted after the listing page was read
				return nil
			}
			if err != nil {
				return err
			}
			meta := t.Meta()
			loaded[i] = &meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metas := make([]models.TournamentMeta, 0, len(loaded))
	for _, meta := range loaded {
		if meta != nil {
			metas = append(metas, *meta)
		}
	}

	SortMetaNewestFirst(metas)
	return metas, nil
}

func (s *r2TournamentStore) Load(ctx context.Context, date string) (*models.Tournament, error) {
	key := s.objectKey(date)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, date)
		}
		return nil, fmt.Errorf("failed to get object from R2 (key: %s): %w", key, err)
	}
	defer out.Body.Close()

	var t models.Tournament
	if err := json.NewDecoder(out.Body).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament object (key: %s): %w", key, err)
	}
	return &t, nil
}

func (s *r2TournamentStore) Save(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	key := s.objectKey(t.TournamentDate)
	body, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tournament %s: %w", t.TournamentDate, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(jsonContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object to R2 (key: %s): %w", key, err)
	}
	return t, nil
}

func (s *r2TournamentStore) Delete(ctx context.Context, date string) error {
	key := s.objectKey(date)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, date)
		}
		return fmt.Errorf("failed to head object in R2 (key: %s): %w", key, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from R2 (key: %s): %w", key, err)
	}
	return nil
}

// PublicURL returns the public address of a tournament object, or "" when
// the bucket has no public base URL.
func (s *r2TournamentStore) PublicURL(date string) string {
	if s.publicBaseURL == "" || date == "" {
		return ""
	}
	base, err := url.Parse(s.publicBaseURL)
	if err != nil {
		return ""
	}
	return base.JoinPath(s.objectKey(date)).String()
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}
