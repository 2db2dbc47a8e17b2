package main

import (
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var deviceGroupCmd = &cobra.Command{
	Use:   "device-group",
	Short: "Manage device groups",
	Long: `Manage a device group, addressed by ID or full path.

Adding a group creates any missing parent groups along its path.

Examples:
  lmctl device-group --action add --full-path "/Prod/Web" \
      --description "production web tier"

  # Downtime one datasource across the whole group
  lmctl device-group --action sdt --full-path "/Prod/Web" \
      --datasource-name Ping --duration 120`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := &reconcile.DeviceGroupSpec{
			ID:              getInt(cmd, "id"),
			FullPath:        flagStr(cmd, "full-path"),
			CollectorID:     getInt(cmd, "collector-id"),
			CollectorDesc:   flagStr(cmd, "collector-description"),
			Description:     flagStr(cmd, "description"),
			DisableAlerting: flagBool(cmd, "disable-alerting"),
			Properties:      flagProps(cmd, "property"),
			DatasourceID:    getInt(cmd, "datasource-id"),
			DatasourceName:  flagStr(cmd, "datasource-name"),
			ForceManage:     getForce(cmd),
			OpType:          getOpType(cmd),
			Downtime:        getDowntime(cmd),
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(deviceGroupCmd, "add, update, remove, sdt")
	deviceGroupCmd.Flags().Int("id", 0, "Device group ID")
	deviceGroupCmd.Flags().String("full-path", "", "Full path of the group, e.g. /Prod/Web")
	deviceGroupCmd.Flags().Int("collector-id", 0, "Default collector ID for the group")
	deviceGroupCmd.Flags().String("collector-description", "", "Default collector description")
	deviceGroupCmd.Flags().String("description", "", "Description")
	deviceGroupCmd.Flags().Bool("disable-alerting", false, "Disable alerting for the group")
	deviceGroupCmd.Flags().StringToString("property", nil, "Custom property as name=value (repeatable)")
	deviceGroupCmd.Flags().Int("datasource-id", 0, "Narrow sdt to one datasource by ID")
	deviceGroupCmd.Flags().String("datasource-name", "", "Narrow sdt to one datasource by name")
	deviceGroupCmd.Flags().Bool("force-manage", true, "Cross over between add and update as needed")
	deviceGroupCmd.Flags().String("op-type", "", "Property merge mode on update (refresh, replace, add)")
	downtimeFlags(deviceGroupCmd)
}
