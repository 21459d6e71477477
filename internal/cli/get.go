package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/datawarehouse/dw-s3-go/s3client"
)

func newGetCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get s3://bucket/key",
		Short: "download an object",
		Long:  "download an object to stdout or to the file named by --output",
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

			handler, results := s3client.ResultChan()
			if err := client.Get(cmd.Context(), bucket, key, handler); err != nil {
				return err
			}
			resp, err := wait(cmd.Context(), results)
			if err != nil {
				return fmt.Errorf("get %s: %w", args[0], err)
			}
			defer resp.Body.Close()

			if output == "" || output == "-" {
				if _, err := io.Copy(cmd.OutOrStdout(), resp.Body); err != nil {
					return fmt.Errorf("get %s: write output: %w", args[0], err)
				}
				return nil
			}
			return writeFile(output, resp.Body)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the object to this file instead of stdout")
	return cmd
}

// writeFile copies r into a new file at path. A failed close is reported
// because it may be the first sign of a failed write.
func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
