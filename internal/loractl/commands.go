package loractl

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lorad/pkg/lora"
	"lorad/pkg/types"
)

const defaultServer = "http://127.0.0.1:8080"

// options holds the persistent CLI settings shared by every subcommand.
type options struct {
	Server  string
	Timeout time.Duration
}

// BuildRootCmd constructs the loractl command tree.
func BuildRootCmd() *cobra.Command {
	opts := &options{Server: defaultServer, Timeout: 30 * time.Second}
	if v := os.Getenv("LORACTL_SERVER"); v != "" {
		opts.Server = v
	}

	root := &cobra.Command{
		Use:           "loractl",
		Short:         "Operator CLI for a lorad adapter server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.Server, "server", opts.Server, "Base URL of the lorad server (defaults LORACTL_SERVER)")
	root.PersistentFlags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "HTTP request timeout")

	root.AddCommand(buildLoadCmd(opts))
	root.AddCommand(buildUnloadCmd(opts))
	root.AddCommand(buildListCmd(opts))
	root.AddCommand(buildStatusCmd(opts))
	return root
}

func buildLoadCmd(opts *options) *cobra.Command {
	var (
		name        string
		id          int64
		path        string
		baseModel   string
		forceReload bool
		configJSON  string
		tensorsJSON string
		extJSON     string
		wire        bool
	)
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load an adapter from a path or from inline JSON config+tensors",
		Example: "  loractl load --name sql-lora --id 1 --path /adapters/sql-lora\n" +
			"  loractl load --name t --id 2 --config-json '{\"r\":8}' --tensors-json '{}'\n" +
			"  loractl load --name sql-lora --id 1 --path /adapters/sql-lora --wire",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := lora.Spec{
				Name:          name,
				ID:            id,
				Path:          path,
				BaseModelName: baseModel,
				ForceReload:   forceReload,
			}
			var err error
			if spec.SourceConfig, err = parseJSONObject("config-json", configJSON); err != nil {
				return err
			}
			if spec.SourceTensors, err = parseJSONObject("tensors-json", tensorsJSON); err != nil {
				return err
			}
			if spec.ExternalConfig, err = parseJSONObject("external-json", extJSON); err != nil {
				return err
			}

			// Build the record locally first so invalid requests fail before
			// any network traffic, with the same errors the server would give.
			req, err := lora.New(spec)
			if err != nil {
				return err
			}

			if wire {
				// Compact ordered-list form, trailing defaults omitted.
				enc, err := json.Marshal(req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(enc))
				return nil
			}

			client := NewClient(opts.Server, opts.Timeout)
			resp, err := client.Load(cmd.Context(), types.LoadAdapterRequest{
				Name:           spec.Name,
				ID:             spec.ID,
				Path:           spec.Path,
				BaseModelName:  spec.BaseModelName,
				ExternalConfig: spec.ExternalConfig,
				ForceReload:    spec.ForceReload,
				SourceConfig:   spec.SourceConfig,
				SourceTensors:  spec.SourceTensors,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s id=%d name=%s op=%s\n", resp.Outcome, resp.ID, resp.Name, resp.OpID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Adapter name (identity key)")
	cmd.Flags().Int64Var(&id, "id", 0, "Numeric adapter id (>= 1)")
	cmd.Flags().StringVar(&path, "path", "", "Path to adapter weights on the server host")
	cmd.Flags().StringVar(&baseModel, "base-model", "", "Base model label (informational)")
	cmd.Flags().BoolVar(&forceReload, "force-reload", false, "Replace an already-loaded adapter with the same id")
	cmd.Flags().StringVar(&configJSON, "config-json", "", "In-memory route: adapter config as a JSON object")
	cmd.Flags().StringVar(&tensorsJSON, "tensors-json", "", "In-memory route: adapter tensors as a JSON object")
	cmd.Flags().StringVar(&extJSON, "external-json", "", "Opaque loader configuration as a JSON object")
	cmd.Flags().BoolVar(&wire, "wire", false, "Print the ordered-list wire encoding instead of contacting the server")
	return cmd
}

func buildUnloadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "unload <id>",
		Short:   "Unload the adapter with the given numeric id",
		Example: "  loractl unload 1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("invalid adapter id %q", args[0])
			}
			client := NewClient(opts.Server, opts.Timeout)
			if err := client.Unload(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unloaded id=%d\n", id)
			return nil
		},
	}
}

func buildListCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known adapters (catalog plus loaded entries)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(opts.Server, opts.Timeout)
			resp, err := client.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, resp)
			}
			for _, a := range resp.Adapters {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", a.ID, a.Name, a.State, a.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")
	return cmd
}

func buildStatusCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show manager status: budget, usage, counters, loaded adapters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := NewClient(opts.Server, opts.Timeout)
			resp, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "budget_mb=%d used_mb=%d margin_mb=%d loads=%d reloads=%d evictions=%d uptime_s=%d\n",
				resp.BudgetMB, resp.UsedMB, resp.MarginMB, resp.LoadsTotal, resp.ReloadsTotal, resp.EvictionsTotal, resp.UptimeSeconds)
			for _, a := range resp.Adapters {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%dMB\n", a.ID, a.Name, a.State, a.Source, a.EstSizeMB)
			}
			if resp.LastError != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "last_error: %s\n", resp.LastError)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")
	return cmd
}

// parseJSONObject decodes a flag value into a map, distinguishing an omitted
// flag (nil map) from an explicitly empty object (non-nil empty map).
func parseJSONObject(flagName, value string) (map[string]any, error) {
	if value == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(value), &m); err != nil {
		return nil, fmt.Errorf("--%s: not a JSON object: %w", flagName, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
