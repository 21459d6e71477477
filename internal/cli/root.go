// Package cli implements the dws3 command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/datawarehouse/dw-s3-go/internal/logger"
	"github.com/datawarehouse/dw-s3-go/s3client"
)

// globalFlags override values loaded from the environment.
type globalFlags struct {
	endpoint         string
	accessKey        string
	secretKey        string
	region           string
	signatureVersion string
	profile          string
	verbose          bool
}

// app carries what every command needs: the global flags and any client
// options injected by the caller.
type app struct {
	flags      globalFlags
	clientOpts []s3client.Option
}

// NewRootCommand returns the dws3 command tree. opts are passed to every
// client the commands create.
func NewRootCommand(opts ...s3client.Option) *cobra.Command {
	a := &app{clientOpts: opts}

	rootCmd := &cobra.Command{
		Use:   "dws3 [command] [flags]",
		Short: "dws3 command-line interface",
		Long: `dws3 talks to an S3-compatible object store.

Credentials and endpoint are read from S3_ACCESS_KEY, S3_SECRET_KEY,
S3_ENDPOINT, S3_REGION and S3_SIGNATURE_VERSION. --profile replaces the
keys and region with those of a shared AWS config profile; the other flags
override both.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.endpoint, "endpoint", "e", "", "object store endpoint (host[:port] or URL)")
	pf.StringVar(&a.flags.accessKey, "access-key", "", "access key")
	pf.StringVar(&a.flags.secretKey, "secret-key", "", "secret key")
	pf.StringVar(&a.flags.region, "region", "", "signing region")
	pf.StringVar(&a.flags.signatureVersion, "signature-version", "", "signature version: v2 or v4")
	pf.StringVar(&a.flags.profile, "profile", "", "read credentials and region from this shared AWS config profile")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newPutCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newPresignCmd(a))
	return rootCmd
}

// Execute runs the dws3 command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newClient loads configuration from the environment, applies flag
// overrides and creates a client.
func (a *app) newClient(cmd *cobra.Command) (*s3client.Client, error) {
	// Validation is left to s3client.New so flags can fill in what the
	// environment lacks.
	var cfg s3client.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("profile") {
		if err := applyProfile(cmd.Context(), &cfg, a.flags.profile); err != nil {
			return nil, err
		}
	}
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("endpoint", &cfg.Endpoint, a.flags.endpoint)
	override("access-key", &cfg.AccessKey, a.flags.accessKey)
	override("secret-key", &cfg.SecretKey, a.flags.secretKey)
	override("region", &cfg.Region, a.flags.region)
	override("signature-version", &cfg.SignatureVersion, a.flags.signatureVersion)

	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	log := logger.NewText(cmd.ErrOrStderr(), level, logger.RequestIDExtractor)

	opts := append([]s3client.Option{s3client.WithLogger(log)}, a.clientOpts...)
	client, err := s3client.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// applyProfile loads the keys and region of a shared config profile.
func applyProfile(ctx context.Context, cfg *s3client.Config, profile string) error {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
	if err != nil {
		return fmt.Errorf("load profile %s: %w", profile, err)
	}
	creds, err := awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("load profile %s: retrieve credentials: %w", profile, err)
	}
	cfg.AccessKey = creds.AccessKeyID
	cfg.SecretKey = creds.SecretAccessKey
	if awsCfg.Region != "" {
		cfg.Region = awsCfg.Region
	}
	return nil
}

// parseObjectURI parses an argument that must name an object, not a bucket.
func parseObjectURI(arg string) (bucket, key string, err error) {
	bucket, key, err = s3client.ParseURI(arg)
	if err != nil {
		return "", "", err
	}
	if key == "" {
		return "", "", fmt.Errorf("%s: missing object key", arg)
	}
	return bucket, key, nil
}

// wait blocks until the handler created by s3client.ResultChan fires and
// turns non-2xx responses into errors. The caller owns the body of a
// successful response.
func wait(ctx context.Context, results <-chan s3client.Result) (*s3client.Response, error) {
	select {
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		if !res.Response.Success() {
			return nil, res.Response.APIError()
		}
		return res.Response, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
