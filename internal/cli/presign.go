package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newPresignCmd(a *app) *cobra.Command {
	var (
		method  string
		expires time.Duration
	)

	cmd := &cobra.Command{
		Use:   "presign s3://bucket/key",
		Short: "print a presigned URL",
		Long:  "print a Signature V4 presigned URL for downloading (GET) or uploading (PUT) an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, key, err := parseObjectURI(args[0])
			if err != nil {
				return err
			}

			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			var url string
			switch strings.ToUpper(method) {
			case "GET":
				url, err = client.PresignGet(cmd.Context(), bucket, key, expires)
			case "PUT":
				url, err = client.PresignPut(cmd.Context(), bucket, key, expires)
			default:
				return fmt.Errorf("unsupported method %q: want GET or PUT", method)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "GET or PUT")
	cmd.Flags().DurationVar(&expires, "expires", 15*time.Minute, "validity of the URL")
	return cmd
}
