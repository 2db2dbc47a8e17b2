package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var escalationChainCmd = &cobra.Command{
	Use:   "escalation-chain",
	Short: "Manage escalation chains",
	Long: `Manage an escalation chain, addressed by ID or name.

Destinations are given as JSON: a list of stages, each a list of
recipients. A recipient is one of an integration ({"name", "user"}),
an arbitrary email ({"name": "arbitrary-email", "address"}), or a
recipient group ({"name": "group", "group-name"}).

Examples:
  lmctl escalation-chain --action add --name oncall \
      --enable-throttling=false \
      --destinations '[[{"name":"email","user":"jane@example.com"}]]'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := &reconcile.EscalationChainSpec{
			ID:               getInt(cmd, "id"),
			Name:             flagStr(cmd, "name"),
			Description:      flagStr(cmd, "description"),
			EnableThrottling: flagBool(cmd, "enable-throttling"),
			RateLimitAlerts:  flagInt(cmd, "rate-limit-alerts"),
			RateLimitPeriod:  flagInt(cmd, "rate-limit-period"),
			ForceManage:      getForce(cmd),
		}

		if cmd.Flags().Changed("destinations") {
			raw, _ := cmd.Flags().GetString("destinations")
			if err := json.Unmarshal([]byte(raw), &spec.Destinations); err != nil {
				return fmt.Errorf("parsing --destinations: %w", err)
			}
		}
		if cmd.Flags().Changed("cc-destinations") {
			raw, _ := cmd.Flags().GetString("cc-destinations")
			if err := json.Unmarshal([]byte(raw), &spec.CCDestinations); err != nil {
				return fmt.Errorf("parsing --cc-destinations: %w", err)
			}
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(escalationChainCmd, "add, update, remove")
	escalationChainCmd.Flags().Int("id", 0, "Escalation chain ID")
	escalationChainCmd.Flags().String("name", "", "Escalation chain name")
	escalationChainCmd.Flags().String("description", "", "Description")
	escalationChainCmd.Flags().Bool("enable-throttling", false, "Throttle alert notifications")
	escalationChainCmd.Flags().Int("rate-limit-alerts", 0, "Max notifications per rate limit period")
	escalationChainCmd.Flags().Int("rate-limit-period", 0, "Rate limit period in minutes")
	escalationChainCmd.Flags().String("destinations", "", "Stages as JSON (list of recipient lists)")
	escalationChainCmd.Flags().String("cc-destinations", "", "CC recipients as JSON (recipient list)")
	escalationChainCmd.Flags().Bool("force-manage", true, "Cross over between add and update as needed")
}
