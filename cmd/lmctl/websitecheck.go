package main

import (
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var websiteCheckCmd = &cobra.Command{
	Use:   "website-check",
	Short: "Schedule downtime for website checks",
	Long: `Schedule downtime for a website check or one of its checkpoint
locations. sdt is the only supported action.

Examples:
  lmctl website-check --action sdt --name shop --duration 60

  # Downtime a single checkpoint location
  lmctl website-check --action sdt --name shop \
      --checkpoint-name "Europe - Dublin"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := &reconcile.WebsiteCheckSpec{
			ID:             getInt(cmd, "id"),
			Name:           getStr(cmd, "name"),
			CheckpointID:   getInt(cmd, "checkpoint-id"),
			CheckpointName: getStr(cmd, "checkpoint-name"),
			Downtime:       getDowntime(cmd),
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(websiteCheckCmd, "sdt")
	websiteCheckCmd.Flags().Int("id", 0, "Website check ID")
	websiteCheckCmd.Flags().String("name", "", "Website check name")
	websiteCheckCmd.Flags().Int("checkpoint-id", 0, "Checkpoint location ID")
	websiteCheckCmd.Flags().String("checkpoint-name", "", "Checkpoint location name")
	downtimeFlags(websiteCheckCmd)
}
