package main

import (
	"context"
	"fmt"

	"github.com/example/pizzaria/pkg/discovery"
	"github.com/spf13/cobra"
)

func instancesCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List the storefront instances registered in etcd",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if name == "" {
				name = cfg.Server.Name
			}

			sd, err := discovery.NewServiceDiscovery(&cfg.Etcd, logger)
			if err != nil {
				return err
			}
			defer sd.Close()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Etcd.DialTimeout)
			defer cancel()
			instances, err := sd.Discover(ctx, name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(instances) == 0 {
				fmt.Fprintf(out, "no instances of %s\n", name)
				return nil
			}
			for _, i := range instances {
				fmt.Fprintln(out, i.Addr())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "service name, defaults to server.name")
	return cmd
}
