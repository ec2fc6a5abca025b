// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage decouples image blobs from document storage. It wraps
// an S3-compatible object store (AWS SDK v2, path-style access): clients
// get a presigned upload target, write bytes to it directly, and later
// resolve the returned blob reference to a fetchable URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// uploadExpiry is how long a presigned upload target stays writable.
const uploadExpiry = 15 * time.Minute

// Client wraps an S3 client for blob operations on one public bucket.
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
}

// UploadTarget is a one-time write destination for image bytes. Key is
// the opaque blob reference the client stores and later resolves.
type UploadTarget struct {
	Key       string    `json:"storageId"`
	URL       string    `json:"uploadUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// New creates an S3 storage client configured for path-style addressing.
// Returns (nil, nil) if endpoint or credentials are empty, allowing the
// app to start without storage.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// RequestUploadTarget issues a short-lived presigned destination for one
// blob. Each call generates a fresh object key; the client PUTs the raw
// bytes (with a content-type header) straight to the URL, out of band of
// the document store. No size or type policy is applied here — that is
// the client's responsibility.
func (c *Client) RequestUploadTarget(ctx context.Context) (*UploadTarget, error) {
	key := "images/" + uuid.NewString()

	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(uploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("s3 presign upload %s/%s: %w", c.bucket, key, err)
	}

	return &UploadTarget{
		Key:       key,
		URL:       req.URL,
		ExpiresAt: time.Now().Add(uploadExpiry),
	}, nil
}

// ResolveURL converts a blob reference into a durable fetchable URL.
// Returns "" if no stored blob matches the reference.
func (c *Client) ResolveURL(ctx context.Context, key string) (string, error) {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("s3 head %s/%s: %w", c.bucket, key, err)
	}
	return c.FileURL(key), nil
}

// Delete removes a blob, freeing the object behind a replaced or
// deleted product image.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for a stored blob. Uses the configured
// public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// KeyFromURL recovers the object key from a URL produced by FileURL.
// URLs pointing anywhere else yield false.
func (c *Client) KeyFromURL(url string) (string, bool) {
	prefix := c.endpoint + "/" + c.bucket + "/"
	if c.publicURL != "" {
		prefix = c.publicURL + "/"
	}
	key, ok := strings.CutPrefix(url, prefix)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// isNotFound reports whether an S3 error means the object is absent.
// HeadObject surfaces missing keys as a generic NotFound API error.
func isNotFound(err error) bool {
	var apiErr interface{ ErrorCode() string }
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}
