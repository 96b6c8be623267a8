package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/arraykit-io/flasharray-client/pkg/faclient"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		endpoint string
		apiToken string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a FlashArray",
		Long:  "Verify credentials against an array and save them to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = viper.GetString("array")
			}

			if endpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Array endpoint: ")
				endpoint, _ = reader.ReadString('\n')
				endpoint = strings.TrimSpace(endpoint)
			}

			if endpoint == "" {
				return ErrNoArrayConfigured
			}

			if apiToken == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read API token: %w", err)
				}

				apiToken = string(byteToken)

				fmt.Println()
			}

			// Verify the credentials before persisting them
			ctx := context.Background()

			client, err := faclient.New(ctx, &flasharray.Config{
				Endpoint: endpoint,
				APIToken: apiToken,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			array, err := client.Arrays().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to array: %w", err)
			}

			_ = client.Close(ctx)

			viper.Set("array", endpoint)
			viper.Set("api-token", apiToken)

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s (%s %s)\n", array.Name, array.OS, array.Version)

			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "array", "a", "", "array management endpoint URL")
	cmd.Flags().StringVarP(&apiToken, "api-token", "t", "", "API token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget saved credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("api-token", "")

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}

// saveConfig writes the current viper state back to the config file.
func saveConfig() error {
	if viper.ConfigFileUsed() != "" {
		return viper.WriteConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	return viper.WriteConfigAs(home + "/.facli/config.yml")
}
