// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud connects to AWS.
package cloud

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/pkg/errors"
)

const AWSProfile = "tileslope"

// NewSession creates an AWS session in region. It uses the AWSProfile
// profile of ~/.aws/credentials if that file exists and the EC2 instance
// role otherwise.
func NewSession(region string) (*session.Session, error) {
	if region == "" {
		return nil, errors.New("missing aws region")
	}

	usr, err := user.Current()
	if err != nil {
		return nil, errors.Wrap(err, "finding home directory")
	}
	path := filepath.Join(usr.HomeDir, ".aws", "credentials")

	var creds *credentials.Credentials
	if _, statErr := os.Stat(path); statErr == nil {
		creds = credentials.NewSharedCredentials(path, AWSProfile)
	} else {
		creds = credentials.NewCredentials(&ec2rolecreds.EC2RoleProvider{Client: ec2metadata.New(session.Must(session.NewSession()))})
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: creds,
	})
	return sess, errors.Wrap(err, "creating aws session")
}
