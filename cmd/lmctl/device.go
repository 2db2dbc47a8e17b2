package main

import (
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage monitored devices",
	Long: `Manage a monitored device.

Examples:
  # Register a device against a collector
  lmctl device --action add --hostname web-1.example.com \
      --display-name web-1 --collector-description col-1

  # Move a device into an auto-balanced collector group
  lmctl device --action update --id 42 --auto-balance \
      --collector-group-name abcg-prod

  # Put a device in downtime for an hour
  lmctl device --action sdt --display-name web-1 --duration 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := &reconcile.DeviceSpec{
			ID:                 getInt(cmd, "id"),
			DisplayName:        flagStr(cmd, "display-name"),
			Hostname:           flagStr(cmd, "hostname"),
			Link:               flagStr(cmd, "link"),
			Groups:             flagSlice(cmd, "groups"),
			Description:        flagStr(cmd, "description"),
			DisableAlerting:    flagBool(cmd, "disable-alerting"),
			Properties:         flagProps(cmd, "property"),
			AutoBalance:        flagBool(cmd, "auto-balance"),
			CollectorGroupID:   getInt(cmd, "collector-group-id"),
			CollectorGroupName: flagStr(cmd, "collector-group-name"),
			CollectorID:        getInt(cmd, "collector-id"),
			CollectorDesc:      flagStr(cmd, "collector-description"),
			ForceManage:        getForce(cmd),
			OpType:             getOpType(cmd),
			Downtime:           getDowntime(cmd),
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(deviceCmd, "add, update, remove, sdt")
	deviceCmd.Flags().Int("id", 0, "Device ID")
	deviceCmd.Flags().String("display-name", "", "Display name")
	deviceCmd.Flags().String("hostname", "", "Hostname or IP address")
	deviceCmd.Flags().String("link", "", "Link shown on the device page")
	deviceCmd.Flags().StringSlice("groups", nil, "Group memberships, numeric IDs or full paths")
	deviceCmd.Flags().String("description", "", "Description")
	deviceCmd.Flags().Bool("disable-alerting", false, "Disable alerting for the device")
	deviceCmd.Flags().StringToString("property", nil, "Custom property as name=value (repeatable)")
	deviceCmd.Flags().Bool("auto-balance", false, "Assign via an auto-balanced collector group")
	deviceCmd.Flags().Int("collector-group-id", 0, "Collector group ID")
	deviceCmd.Flags().String("collector-group-name", "", "Collector group name")
	deviceCmd.Flags().Int("collector-id", 0, "Preferred collector ID")
	deviceCmd.Flags().String("collector-description", "", "Preferred collector description")
	deviceCmd.Flags().Bool("force-manage", true, "Cross over between add and update as needed")
	deviceCmd.Flags().String("op-type", "", "Property merge mode on update (refresh, replace, add)")
	downtimeFlags(deviceCmd)
}
