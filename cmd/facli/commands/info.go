package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show array information",
		Long:  "Display identity, software version, and space consumption of the target array",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close(ctx) }()

			array, err := client.Arrays().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get array info: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return outputJSON(array)
			case OutputFormatYAML:
				return outputYAML(array)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Name", array.Name)
				_ = table.Append("ID", array.ID)
				_ = table.Append("OS", array.OS)
				_ = table.Append("Version", array.Version)
				_ = table.Append("Capacity", formatBytes(array.Capacity))
				_ = table.Append("REST Version", client.APIVersion())

				if array.Space != nil {
					_ = table.Append("Used", formatBytes(array.Space.TotalPhysical))
					_ = table.Append("Data Reduction", strconv.FormatFloat(array.Space.DataReduction, 'f', 1, 64)+":1")
				}

				_ = table.Render()
			}

			return nil
		},
	}
}
