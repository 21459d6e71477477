package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/spf13/cobra"

	"github.com/datawarehouse/dw-s3-go/s3client"
)

func newPutCmd(a *app) *cobra.Command {
	var (
		contentType  string
		storageClass string
		metadata     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "put FILE s3://bucket/key",
		Short: "upload an object",
		Long: `upload a file, or stdin when FILE is "-".

Regular files are streamed with their size known upfront; stdin is buffered
in memory before it is sent.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, key, err := parseObjectURI(args[1])
			if err != nil {
				return err
			}

			var opts []s3client.RequestOption
			if contentType != "" {
				opts = append(opts, s3client.WithContentType(contentType))
			}
			if storageClass != "" {
				opts = append(opts, s3client.WithStorageClass(types.StorageClass(storageClass)))
			}
			if len(metadata) > 0 {
				opts = append(opts, s3client.WithMetadata(metadata))
			}

			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			handler, results := s3client.ResultChan()
			if args[0] == "-" {
				err = client.PutStream(cmd.Context(), bucket, key, cmd.InOrStdin(), handler, opts...)
			} else {
				err = putFile(cmd, client, args[0], bucket, key, handler, opts)
			}
			if err != nil {
				return err
			}

			resp, err := wait(cmd.Context(), results)
			if err != nil {
				return fmt.Errorf("put %s: %w", args[1], err)
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			return resp.Body.Close()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&contentType, "content-type", "t", "", "Content-Type of the object")
	f.StringVar(&storageClass, "storage-class", "", "storage class, e.g. STANDARD or REDUCED_REDUNDANCY")
	f.StringToStringVarP(&metadata, "meta", "m", nil, "user metadata as key=value pairs")
	return cmd
}

// putFile streams path with its size as Content-Length. The file stays open
// until the handler fires.
func putFile(cmd *cobra.Command, client *s3client.Client, path, bucket, key string, handler s3client.ResponseHandler, opts []s3client.RequestOption) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	done := func(resp *s3client.Response, err error) {
		f.Close()
		handler(resp, err)
	}
	if err := client.PutStreamSize(cmd.Context(), bucket, key, f, info.Size(), done, opts...); err != nil {
		f.Close()
		return err
	}
	return nil
}
