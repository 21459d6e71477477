package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/datawarehouse/dw-s3-go/s3client"
)

func newDeleteCmd(a *app) *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "delete s3://bucket/key [s3://bucket/key...]",
		Short: "delete objects",
		Long:  "delete one or more objects, up to --parallel at a time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type target struct{ uri, bucket, key string }
			targets := make([]target, 0, len(args))
			for _, arg := range args {
				bucket, key, err := parseObjectURI(arg)
				if err != nil {
					return err
				}
				targets = append(targets, target{uri: arg, bucket: bucket, key: key})
			}

			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			var mu sync.Mutex
			out := cmd.OutOrStdout()

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(parallel, 1))
			for _, t := range targets {
				g.Go(func() error {
					handler, results := s3client.ResultChan()
					if err := client.Delete(ctx, t.bucket, t.key, handler); err != nil {
						return err
					}
					resp, err := wait(ctx, results)
					if err != nil {
						return fmt.Errorf("delete %s: %w", t.uri, err)
					}
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()

					mu.Lock()
					defer mu.Unlock()
					_, err = fmt.Fprintf(out, "deleted %s\n", t.uri)
					return err
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "number of deletes in flight")
	return cmd
}
