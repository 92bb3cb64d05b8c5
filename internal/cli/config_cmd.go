package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// configCommand creates the config command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
		Long: `Inspect where pillbox reads its configuration and what it resolves to.

Values are read from, in increasing precedence: the config file, a .env
file in the working directory, and the environment (` + envAPIKey + `,
` + envBaseURL + `, ` + envStrict + `).`,
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				fmt.Fprintln(c.out, c.configPath)
				return nil
			}
			p, err := defaultConfigPath()
			if err != nil {
				return fmt.Errorf("config path: %w", err)
			}
			fmt.Fprintln(c.out, p)
			return nil
		},
	}
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			key := maskKey(cfg.APIKey)
			if key == "" {
				key = "(not set)"
			}
			printKeyValue(c.out, "api_key", key)
			printLink(c.out, "base_url", cfg.BaseURL)
			printKeyValue(c.out, "strict", fmt.Sprint(cfg.Strict))

			if len(cfg.Sources) == 0 {
				printDetail(c.out, "no config file, .env or environment values found")
			} else {
				printDetail(c.out, "from %s", strings.Join(cfg.Sources, ", "))
			}
			if cfg.APIKey == "" {
				printWarning(c.out, "searches need an API key")
				printNextStep(c.out, "Set one with", "export "+envAPIKey+"=...")
			}
			return nil
		},
	}
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
