package main

import (
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var alertRuleCmd = &cobra.Command{
	Use:   "alert-rule",
	Short: "Manage alert rules",
	Long: `Manage an alert rule, addressed by ID or name.

Group, device, datasource, instance and datapoint selectors are glob
patterns matched server side.

Examples:
  lmctl alert-rule --action add --name "db errors" --priority 100 \
      --level Error --groups "/Prod/DB*" \
      --escalation-chain-id 21 --escalation-interval 15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := &reconcile.AlertRuleSpec{
			ID:                 getInt(cmd, "id"),
			Name:               flagStr(cmd, "name"),
			Priority:           flagInt(cmd, "priority"),
			Level:              flagStr(cmd, "level"),
			Datapoint:          flagStr(cmd, "datapoint"),
			Datasource:         flagStr(cmd, "datasource"),
			Instance:           flagStr(cmd, "instance"),
			Groups:             flagSlice(cmd, "groups"),
			Devices:            flagSlice(cmd, "devices"),
			SuppressClear:      flagBool(cmd, "suppress-clear"),
			SuppressAckSDT:     flagBool(cmd, "suppress-ack-sdt"),
			EscalationChainID:  flagInt(cmd, "escalation-chain-id"),
			EscalationInterval: flagInt(cmd, "escalation-interval"),
			Properties:         flagProps(cmd, "resource-property"),
			ForceManage:        getForce(cmd),
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(alertRuleCmd, "add, update, remove")
	alertRuleCmd.Flags().Int("id", 0, "Alert rule ID")
	alertRuleCmd.Flags().String("name", "", "Alert rule name")
	alertRuleCmd.Flags().Int("priority", 0, "Rule priority, lower numbers match first")
	alertRuleCmd.Flags().String("level", "", "Minimum severity (All, Warn, Error, Critical)")
	alertRuleCmd.Flags().String("datapoint", "", "Datapoint pattern")
	alertRuleCmd.Flags().String("datasource", "", "Datasource pattern")
	alertRuleCmd.Flags().String("instance", "", "Instance pattern")
	alertRuleCmd.Flags().StringSlice("groups", nil, "Device group patterns")
	alertRuleCmd.Flags().StringSlice("devices", nil, "Device patterns")
	alertRuleCmd.Flags().Bool("suppress-clear", false, "Suppress alert clear notifications")
	alertRuleCmd.Flags().Bool("suppress-ack-sdt", false, "Suppress ack and sdt notifications")
	alertRuleCmd.Flags().Int("escalation-chain-id", 0, "Escalation chain ID")
	alertRuleCmd.Flags().Int("escalation-interval", 0, "Escalation interval in minutes")
	alertRuleCmd.Flags().StringToString("resource-property", nil, "Match resources by property as name=value (repeatable)")
	alertRuleCmd.Flags().Bool("force-manage", true, "Cross over between add and update as needed")
}
