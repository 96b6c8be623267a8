package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// NewHostsCommand creates the hosts command group.
func NewHostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hosts",
		Aliases: []string{"host"},
		Short:   "Manage hosts",
		Long:    "List, create, and delete initiator hosts on the array",
	}

	cmd.AddCommand(newHostsListCommand())
	cmd.AddCommand(newHostsCreateCommand())
	cmd.AddCommand(newHostsDeleteCommand())

	return cmd
}

func newHostsListCommand() *cobra.Command {
	var (
		all    bool
		filter string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close(ctx) }()

			params := flasharray.NewQueryParams().WithLimit(defaultListPageSize)
			if filter != "" {
				params.WithFilter(filter)
			}

			resp, err := client.Hosts().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list hosts: %w", err)
			}

			hosts, err := collectHosts(resp, all)
			if err != nil {
				return err
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return outputJSON(hosts)
			case OutputFormatYAML:
				return outputYAML(hosts)
			default:
				return outputHostsTable(hosts, resp, all)
			}
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")
	cmd.Flags().StringVar(&filter, "filter", "", "filter expression")

	return cmd
}

func collectHosts(resp *flasharray.ListResponse[flasharray.Host], all bool) ([]flasharray.Host, error) {
	if all {
		hosts, err := resp.Items.All()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch all hosts: %w", err)
		}

		return hosts, nil
	}

	var hosts []flasharray.Host

	for len(hosts) < defaultListPageSize && resp.Items.HasNext() {
		item, err := resp.Items.Next()
		if err != nil {
			if errors.Is(err, flasharray.ErrNoMoreItems) {
				break
			}

			return nil, fmt.Errorf("failed to fetch hosts: %w", err)
		}

		hosts = append(hosts, item)
	}

	return hosts, nil
}

func outputHostsTable(hosts []flasharray.Host, resp *flasharray.ListResponse[flasharray.Host], all bool) error {
	if len(hosts) == 0 {
		_, _ = os.Stdout.WriteString("No hosts found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Host Group", "Initiators", "Connections", "Personality")

	for i := range hosts {
		host := &hosts[i]

		hostGroup := ""
		if host.HostGroup != nil {
			hostGroup = host.HostGroup.Name
		}

		initiators := len(host.IQNs) + len(host.WWNs) + len(host.NQNs)

		_ = table.Append(host.Name, hostGroup, strconv.Itoa(initiators), strconv.Itoa(host.ConnectionCount), host.Personality)
	}

	_ = table.Render()

	if !all && resp.MoreItemsRemaining {
		_, _ = fmt.Fprintln(os.Stdout, "\nMore hosts remain. Use --all to fetch every page.")
	}

	return nil
}

func newHostsCreateCommand() *cobra.Command {
	var (
		iqns        []string
		wwns        []string
		nqns        []string
		personality string
	)

	cmd := &cobra.Command{
		Use:   "create HOST_NAME...",
		Short: "Create hosts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close(ctx) }()

			body := &flasharray.HostPost{
				IQNs:        iqns,
				WWNs:        wwns,
				NQNs:        nqns,
				Personality: personality,
			}

			created, err := client.Hosts().Create(ctx, body, args...)
			if err != nil {
				return fmt.Errorf("failed to create hosts: %w", err)
			}

			for i := range created {
				fmt.Printf("Created host '%s'\n", created[i].Name)
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&iqns, "iqn", nil, "iSCSI qualified names")
	cmd.Flags().StringSliceVar(&wwns, "wwn", nil, "Fibre Channel worldwide names")
	cmd.Flags().StringSliceVar(&nqns, "nqn", nil, "NVMe qualified names")
	cmd.Flags().StringVar(&personality, "personality", "", "host personality (e.g. esxi, aix)")

	return cmd
}

func newHostsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HOST_NAME...",
		Short: "Delete hosts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close(ctx) }()

			refs := make([]flasharray.Reference, 0, len(args))
			for _, name := range args {
				refs = append(refs, flasharray.Reference{Name: name})
			}

			if err := client.Hosts().Delete(ctx, refs...); err != nil {
				return fmt.Errorf("failed to delete hosts: %w", err)
			}

			fmt.Printf("Deleted %s\n", strings.Join(args, ", "))

			return nil
		},
	}
}
