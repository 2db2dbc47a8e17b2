package main

import (
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var collectorGroupCmd = &cobra.Command{
	Use:   "collector-group",
	Short: "Manage collector groups",
	Long: `Manage a collector group, addressed by ID or name.

Examples:
  lmctl collector-group --action add --name edge \
      --auto-balance --instance-threshold 10000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := &reconcile.CollectorGroupSpec{
			ID:                getInt(cmd, "id"),
			Name:              flagStr(cmd, "name"),
			Description:       flagStr(cmd, "description"),
			Properties:        flagProps(cmd, "property"),
			AutoBalance:       flagBool(cmd, "auto-balance"),
			InstanceThreshold: flagInt(cmd, "instance-threshold"),
			ForceManage:       getForce(cmd),
			OpType:            getOpType(cmd),
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(collectorGroupCmd, "add, update, remove")
	collectorGroupCmd.Flags().Int("id", 0, "Collector group ID")
	collectorGroupCmd.Flags().String("name", "", "Collector group name")
	collectorGroupCmd.Flags().String("description", "", "Description")
	collectorGroupCmd.Flags().StringToString("property", nil, "Custom property as name=value (repeatable)")
	collectorGroupCmd.Flags().Bool("auto-balance", false, "Auto balance devices across the group")
	collectorGroupCmd.Flags().Int("instance-threshold", 0, "Instance count threshold per collector when auto balanced")
	collectorGroupCmd.Flags().Bool("force-manage", true, "Cross over between add and update as needed")
	collectorGroupCmd.Flags().String("op-type", "", "Property merge mode on update (refresh, replace, add)")
}
