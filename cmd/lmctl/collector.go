package main

import (
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var collectorCmd = &cobra.Command{
	Use:   "collector",
	Short: "Manage collector registrations",
	Long: `Manage a collector registration, addressed by ID or description.

Add registers the collector with the account; installing the collector
binary on its host happens elsewhere. Pass --lmotel for the
OpenTelemetry collector subtype.

Examples:
  lmctl collector --action add --description col-west-1 \
      --collector-group-name edge

  # Clear the escalation chain without touching anything else
  lmctl collector --action update --id 3 --escalating-chain-id 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lmotel, _ := cmd.Flags().GetBool("lmotel")
		spec := &reconcile.CollectorSpec{
			ID:                  getInt(cmd, "id"),
			Description:         flagStr(cmd, "description"),
			CollectorGroupID:    getInt(cmd, "collector-group-id"),
			CollectorGroupName:  flagStr(cmd, "collector-group-name"),
			DeviceGroupID:       getInt(cmd, "device-group-id"),
			DeviceGroupFullPath: flagStr(cmd, "device-group-full-path"),
			EscalatingChainID:   flagInt(cmd, "escalating-chain-id"),
			EscalatingChainName: flagStr(cmd, "escalating-chain-name"),
			BackupCollectorID:   flagInt(cmd, "backup-collector-id"),
			BackupCollectorDesc: flagStr(cmd, "backup-collector-description"),
			ResendInterval:      flagInt(cmd, "resend-interval"),
			Properties:          flagProps(cmd, "property"),
			LMOtel:              lmotel,
			ForceManage:         getForce(cmd),
			OpType:              getOpType(cmd),
			Downtime:            getDowntime(cmd),
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(collectorCmd, "add, update, remove, sdt")
	collectorCmd.Flags().Int("id", 0, "Collector ID")
	collectorCmd.Flags().String("description", "", "Collector description")
	collectorCmd.Flags().Int("collector-group-id", 0, "Collector group ID")
	collectorCmd.Flags().String("collector-group-name", "", "Collector group name")
	collectorCmd.Flags().Int("device-group-id", 0, "Device group for the collector host (add only)")
	collectorCmd.Flags().String("device-group-full-path", "", "Device group full path (add only)")
	collectorCmd.Flags().Int("escalating-chain-id", 0, "Escalation chain ID, 0 clears it (update only)")
	collectorCmd.Flags().String("escalating-chain-name", "", "Escalation chain name (update only)")
	collectorCmd.Flags().Int("backup-collector-id", 0, "Backup collector ID, 0 clears it (update only)")
	collectorCmd.Flags().String("backup-collector-description", "", "Backup collector description (update only)")
	collectorCmd.Flags().Int("resend-interval", 0, "Alert resend interval in minutes (update only)")
	collectorCmd.Flags().StringToString("property", nil, "Custom property as name=value (repeatable)")
	collectorCmd.Flags().Bool("lmotel", false, "Target the OpenTelemetry collector subtype")
	collectorCmd.Flags().Bool("force-manage", true, "Cross over between add and update as needed")
	collectorCmd.Flags().String("op-type", "", "Property merge mode on update (refresh, replace, add)")
	downtimeFlags(collectorCmd)
}
