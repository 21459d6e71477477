package s3client

import (
	"github.com/aws/aws-sdk-go-v2/aws"
)

// credentialsSource labels credentials handed to the AWS SDK.
const credentialsSource = "s3client.Credentials"

// Credentials is the access/secret key pair used to sign requests.
type Credentials struct {
	AccessKey string
	SecretKey string
}

func (c Credentials) validate() error {
	if c.AccessKey == "" {
		return &ConfigurationError{Key: ConfigKeyAccessKey}
	}
	if c.SecretKey == "" {
		return &ConfigurationError{Key: ConfigKeySecretKey}
	}
	return nil
}

func (c Credentials) aws() aws.Credentials {
	return aws.Credentials{
		AccessKeyID:     c.AccessKey,
		SecretAccessKey: c.SecretKey,
		Source:          credentialsSource,
	}
}
