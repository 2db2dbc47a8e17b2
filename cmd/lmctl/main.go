package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/api"
	"github.com/lmops/lmctl/pkg/config"
	"github.com/lmops/lmctl/pkg/log"
	"github.com/lmops/lmctl/pkg/reconcile"
	"github.com/lmops/lmctl/pkg/types"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var engine *reconcile.Engine

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lmctl",
	Short: "lmctl - declarative LogicMonitor resource management",
	Long: `lmctl converges LogicMonitor resources toward a declared state.

Each subcommand targets one resource kind and takes an --action of add,
update, remove or sdt. The result is printed as JSON on stdout; any
failure exits with status 1 and a single error line on stderr.

Credentials come from a YAML config file (--config) or from the
LMCTL_COMPANY, LMCTL_ACCESS_ID and LMCTL_ACCESS_KEY environment
variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("log-json") {
			cfg.Log.JSON, _ = cmd.Flags().GetBool("log-json")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log.Init(cfg.LogSettings())
		log.Logger = log.Logger.With().Str("invocation_id", uuid.NewString()).Logger()

		engine = reconcile.NewEngine(api.NewClient(cfg.Credential))
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"lmctl version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(deviceGroupCmd)
	rootCmd.AddCommand(collectorCmd)
	rootCmd.AddCommand(collectorGroupCmd)
	rootCmd.AddCommand(escalationChainCmd)
	rootCmd.AddCommand(alertRuleCmd)
	rootCmd.AddCommand(opsNoteCmd)
	rootCmd.AddCommand(websiteCheckCmd)
}

// runAction applies the requested action to the spec and prints the result.
func runAction(cmd *cobra.Command, spec reconcile.Spec) error {
	action, _ := cmd.Flags().GetString("action")
	res, err := engine.Apply(cmd.Context(), types.Action(action), spec)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// actionFlag registers the shared --action flag on a resource command.
func actionFlag(cmd *cobra.Command, actions string) {
	cmd.Flags().String("action", "", "Action to perform ("+actions+")")
	_ = cmd.MarkFlagRequired("action")
}

// downtimeFlags registers the shared sdt window flags.
func downtimeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start-time", "", `Downtime start, "yyyy-MM-dd HH:mm" or "yyyy-MM-dd hh:mm am/pm" (default now)`)
	cmd.Flags().String("end-time", "", "Downtime end in the same format (overrides --duration)")
	cmd.Flags().Int("duration", 0, "Downtime length in minutes (default 30)")
	cmd.Flags().String("comment", "", "Downtime comment")
}

func getDowntime(cmd *cobra.Command) reconcile.Downtime {
	start, _ := cmd.Flags().GetString("start-time")
	end, _ := cmd.Flags().GetString("end-time")
	duration, _ := cmd.Flags().GetInt("duration")
	comment, _ := cmd.Flags().GetString("comment")
	return reconcile.Downtime{StartTime: start, EndTime: end, Duration: duration, Comment: comment}
}

// Flag accessors returning nil when the flag was not given, so unset
// fields stay out of partial payloads.

func flagStr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func flagInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func flagBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func flagProps(cmd *cobra.Command, name string) map[string]any {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	raw, _ := cmd.Flags().GetStringToString(name)
	props := make(map[string]any, len(raw))
	for k, v := range raw {
		props[k] = v
	}
	return props
}

func flagSlice(cmd *cobra.Command, name string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetStringSlice(name)
	return v
}

func getInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func getStr(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func getOpType(cmd *cobra.Command) types.OpType {
	v, _ := cmd.Flags().GetString("op-type")
	return types.OpType(v)
}

func getForce(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("force-manage")
	return v
}
