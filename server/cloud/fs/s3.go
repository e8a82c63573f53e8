// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

type S3Filesystem struct {
	svc    *s3.S3
	bucket string
}

func NewS3Filesystem(session *session.Session, bucket string) (*S3Filesystem, error) {
	if bucket == "" {
		return nil, errors.New("missing s3 bucket")
	}
	return &S3Filesystem{svc: s3.New(session), bucket: bucket}, nil
}

var s3ContentTypes = map[string]string{
	".json": "application/json",
	".png":  "image/png",
}

func (s3Filesystem *S3Filesystem) Upload(name string, secondsCache int, data []byte) error {
	readSeeker := bytes.NewReader(data)

	// Patch S3's limited vocabulary of default content types
	var contentType *string
	for ext, mime := range s3ContentTypes {
		if strings.HasSuffix(name, ext) {
			contentType = aws.String(mime)
			break
		}
	}

	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.bucket),
		Key:          aws.String(name),
		Body:         readSeeker,
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType,
	})
	return errors.Wrapf(req.Send(), "uploading %s to s3", name)
}

func (s3Filesystem *S3Filesystem) Download(name string) ([]byte, error) {
	out, err := s3Filesystem.svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s3Filesystem.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNotExist
		}
		return nil, errors.Wrapf(err, "downloading %s from s3", name)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	return data, errors.Wrapf(err, "reading %s from s3", name)
}

func (s3Filesystem *S3Filesystem) List(prefix string) ([]string, error) {
	var names []string
	err := s3Filesystem.svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: aws.String(s3Filesystem.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, object := range page.Contents {
			names = append(names, aws.StringValue(object.Key))
		}
		return true
	})
	return names, errors.Wrapf(err, "listing %s in s3", prefix)
}
