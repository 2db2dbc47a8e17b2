package main

import (
	"github.com/spf13/cobra"

	"github.com/lmops/lmctl/pkg/reconcile"
)

var opsNoteCmd = &cobra.Command{
	Use:   "ops-note",
	Short: "Manage ops notes",
	Long: `Manage an ops note. Add files a new note; update and remove address
an existing note by its server-assigned string ID.

Examples:
  lmctl ops-note --action add --note "deployed v2" --tags release,v2 \
      --scope-type device --scopes 42

  lmctl ops-note --action remove --id dBL0FcGrQvKCybFKnzxnrg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := &reconcile.OpsNoteSpec{
			ID:          getStr(cmd, "id"),
			Note:        flagStr(cmd, "note"),
			Tags:        flagSlice(cmd, "tags"),
			ScopeType:   getStr(cmd, "scope-type"),
			Scopes:      flagSlice(cmd, "scopes"),
			NoteTime:    getStr(cmd, "note-time"),
			ForceManage: getForce(cmd),
		}
		return runAction(cmd, spec)
	},
}

func init() {
	actionFlag(opsNoteCmd, "add, update, remove")
	opsNoteCmd.Flags().String("id", "", "Ops note ID")
	opsNoteCmd.Flags().String("note", "", "Note text")
	opsNoteCmd.Flags().StringSlice("tags", nil, "Tags for the note")
	opsNoteCmd.Flags().String("scope-type", "", "Scope kind (device, deviceGroup, website)")
	opsNoteCmd.Flags().StringSlice("scopes", nil, "Resource IDs the note applies to")
	opsNoteCmd.Flags().String("note-time", "", `When the event happened, "yyyy-MM-dd HH:mm" (default now)`)
	opsNoteCmd.Flags().Bool("force-manage", true, "Cross over between add and update as needed")
}
