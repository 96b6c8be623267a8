package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// NewVolumesCommand creates the volumes command group.
func NewVolumesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "volumes",
		Aliases: []string{"volume", "vols", "vol"},
		Short:   "Manage volumes",
		Long:    "List, create, and destroy block volumes on the array",
	}

	cmd.AddCommand(newVolumesListCommand())
	cmd.AddCommand(newVolumesCreateCommand())
	cmd.AddCommand(newVolumesDestroyCommand())

	return cmd
}

// VolumesListOptions holds the options for listing volumes.
type VolumesListOptions struct {
	All    bool
	Limit  int
	Filter string
	Sort   []string
}

func newVolumesListCommand() *cobra.Command {
	var opts VolumesListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List volumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolumesListCommand(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter expression")
	cmd.Flags().StringSliceVar(&opts.Sort, "sort", nil, "sort keys")

	return cmd
}

func runVolumesListCommand(opts VolumesListOptions) error {
	ctx := context.Background()

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close(ctx) }()

	params := flasharray.NewQueryParams()
	if opts.Limit > 0 {
		params.WithLimit(opts.Limit)
	}

	if opts.Filter != "" {
		params.WithFilter(opts.Filter)
	}

	if len(opts.Sort) > 0 {
		params.WithSort(opts.Sort...)
	}

	pageSize := opts.Limit
	if pageSize <= 0 {
		pageSize = defaultListPageSize
		params.WithLimit(pageSize)
	}

	resp, err := client.Volumes().List(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list volumes: %w", err)
	}

	volumes, err := collectVolumes(resp, opts.All, pageSize)
	if err != nil {
		return err
	}

	return outputVolumes(volumes, resp, opts.All)
}

// collectVolumes drains the iterator, either across all pages or stopping at
// the first page boundary.
func collectVolumes(resp *flasharray.ListResponse[flasharray.Volume], all bool, pageSize int) ([]flasharray.Volume, error) {
	if all {
		volumes, err := resp.Items.All()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch all volumes: %w", err)
		}

		return volumes, nil
	}

	var volumes []flasharray.Volume

	for len(volumes) < pageSize && resp.Items.HasNext() {
		item, err := resp.Items.Next()
		if err != nil {
			if errors.Is(err, flasharray.ErrNoMoreItems) {
				break
			}

			return nil, fmt.Errorf("failed to fetch volumes: %w", err)
		}

		volumes = append(volumes, item)
	}

	return volumes, nil
}

func outputVolumes(volumes []flasharray.Volume, resp *flasharray.ListResponse[flasharray.Volume], all bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return outputJSON(volumes)
	case OutputFormatYAML:
		return outputYAML(volumes)
	default:
		return outputVolumesTable(volumes, resp, all)
	}
}

func outputVolumesTable(volumes []flasharray.Volume, resp *flasharray.ListResponse[flasharray.Volume], all bool) error {
	if len(volumes) == 0 {
		_, _ = os.Stdout.WriteString("No volumes found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Size", "Serial", "Created", "Destroyed")

	for i := range volumes {
		vol := &volumes[i]
		created := time.UnixMilli(vol.Created).UTC().Format("2006-01-02 15:04:05")

		_ = table.Append(vol.Name, formatBytes(vol.Provisioned), vol.Serial, created, strconv.FormatBool(vol.Destroyed))
	}

	_ = table.Render()

	if !all && resp.MoreItemsRemaining {
		_, _ = fmt.Fprintln(os.Stdout, "\nMore volumes remain. Use --all to fetch every page.")
	}

	return nil
}

func newVolumesCreateCommand() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "create VOLUME_NAME...",
		Short: "Create volumes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provisioned, err := parseSize(size)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close(ctx) }()

			created, err := client.Volumes().Create(ctx, &flasharray.VolumePost{Provisioned: provisioned}, args...)
			if err != nil {
				return fmt.Errorf("failed to create volumes: %w", err)
			}

			for i := range created {
				fmt.Printf("Created volume '%s' (%s)\n", created[i].Name, formatBytes(created[i].Provisioned))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "provisioned size, e.g. 100G or 1T (required)")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func newVolumesDestroyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy VOLUME_NAME...",
		Short: "Destroy volumes",
		Long:  "Flag volumes as destroyed; the array reclaims them after the eradication delay",
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

			destroyed := true

			_, err = client.Volumes().Update(ctx, &flasharray.VolumePatch{Destroyed: &destroyed}, refs...)
			if err != nil {
				return fmt.Errorf("failed to destroy volumes: %w", err)
			}

			for _, name := range args {
				fmt.Printf("Destroyed volume '%s'\n", name)
			}

			return nil
		},
	}
}

// parseSize parses sizes like "512", "100G", "2T" into bytes.
func parseSize(s string) (int64, error) {
	if s == "" {
		return 0, ErrSizeRequired
	}

	multiplier := int64(1)
	numeric := s

	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1 << 10
		numeric = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1 << 20
		numeric = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1 << 30
		numeric = s[:len(s)-1]
	case 'T', 't':
		multiplier = 1 << 40
		numeric = s[:len(s)-1]
	case 'P', 'p':
		multiplier = 1 << 50
		numeric = s[:len(s)-1]
	}

	value, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size '%s': %w", s, err)
	}

	return value * multiplier, nil
}
