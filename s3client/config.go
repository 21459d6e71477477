package s3client

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Configuration mapping keys accepted by ConfigFromMap.
const (
	ConfigKeyAccessKey        = "awsAccessKey"
	ConfigKeySecretKey        = "awsSecretKey"
	ConfigKeyEndpoint         = "s3Endpoint"
	ConfigKeyRegion           = "s3Region"
	ConfigKeySignatureVersion = "s3SignatureVersion"
)

// Signature versions understood by Config.SignatureVersion.
const (
	SignatureV2 = "v2"
	SignatureV4 = "v4"
)

// DefaultRegion is used for V4 signing and presigning when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Config holds connection parameters for an S3-compatible endpoint.
type Config struct {
	// AccessKey is the access key ID used to sign requests (required).
	AccessKey string `env:"S3_ACCESS_KEY"`

	// SecretKey is the secret access key used to sign requests (required).
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is the server host, optionally with a scheme and port
	// (e.g. "localhost:9000" or "https://s3.example.com"). Required.
	// Without a scheme, plain HTTP is used.
	Endpoint string `env:"S3_ENDPOINT"`

	// Region is the region used for V4 signatures and presigned URLs.
	// Defaults to "us-east-1".
	Region string `env:"S3_REGION" envDefault:"us-east-1"`

	// SignatureVersion selects the Authorization scheme: "v2" (default) or "v4".
	SignatureVersion string `env:"S3_SIGNATURE_VERSION" envDefault:"v2"`
}

// LoadConfig reads a Config from S3_* environment variables. The result is
// validated the same way New validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("s3client: parse environment: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromMap builds a Config from a loosely typed mapping such as a decoded
// JSON object. The keys awsAccessKey, awsSecretKey and s3Endpoint are
// required; a missing, nil or non-string value fails with a
// *ConfigurationError naming the key.
func ConfigFromMap(m map[string]any) (Config, error) {
	var cfg Config
	var err error

	if cfg.AccessKey, err = requiredString(m, ConfigKeyAccessKey); err != nil {
		return Config{}, err
	}
	if cfg.SecretKey, err = requiredString(m, ConfigKeySecretKey); err != nil {
		return Config{}, err
	}
	if cfg.Endpoint, err = requiredString(m, ConfigKeyEndpoint); err != nil {
		return Config{}, err
	}
	if cfg.Region, err = optionalString(m, ConfigKeyRegion); err != nil {
		return Config{}, err
	}
	if cfg.SignatureVersion, err = optionalString(m, ConfigKeySignatureVersion); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func requiredString(m map[string]any, key string) (string, error) {
	v, err := optionalString(m, key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", &ConfigurationError{Key: key}
	}
	return v, nil
}

func optionalString(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ConfigurationError{Key: key, Reason: fmt.Sprintf("expected string, got %T", raw)}
	}
	return s, nil
}

// applyDefaults fills in default values for empty config fields.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.SignatureVersion == "" {
		c.SignatureVersion = SignatureV2
	}
	c.SignatureVersion = strings.ToLower(c.SignatureVersion)
}

// validate checks that required configuration fields are set.
func (c *Config) validate() error {
	if c.AccessKey == "" {
		return &ConfigurationError{Key: ConfigKeyAccessKey}
	}
	if c.SecretKey == "" {
		return &ConfigurationError{Key: ConfigKeySecretKey}
	}
	if c.Endpoint == "" {
		return &ConfigurationError{Key: ConfigKeyEndpoint}
	}
	switch c.SignatureVersion {
	case SignatureV2, SignatureV4:
	default:
		return &ConfigurationError{
			Key:    ConfigKeySignatureVersion,
			Reason: fmt.Sprintf("unsupported signature version %q", c.SignatureVersion),
		}
	}
	return nil
}

// credentials returns the immutable key pair held by the client.
func (c *Config) credentials() Credentials {
	return Credentials{AccessKey: c.AccessKey, SecretKey: c.SecretKey}
}
