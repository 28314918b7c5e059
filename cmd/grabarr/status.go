package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show last and next sync times per instance",
	RunE:  runStatusCmd,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statusCmd)
}

type instanceStatus struct {
	Instance string `json:"instance"`
	Type     string `json:"type"`
	LastSync string `json:"last_sync_time,omitempty"`
	NextSync string `json:"next_sync_time,omitempty"`
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	a, err := setup(configPath, instanceName)
	if err != nil {
		return err
	}
	defer a.close()

	statuses := make([]instanceStatus, 0, len(a.runners))
	for _, r := range a.runners {
		st := instanceStatus{Instance: r.name, Type: string(r.typ)}
		status, ok, err := a.store.SyncStatusFor(cmd.Context(), r.name, r.typ)
		if err != nil {
			return fmt.Errorf("read sync status for %s: %w", r.name, err)
		}
		if ok {
			st.LastSync = status.LastSyncTime.Format(time.RFC3339)
			st.NextSync = status.NextSyncTime.Format(time.RFC3339)
		}
		statuses = append(statuses, st)
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	fmt.Printf("  %-16s %-8s %-22s %s\n", "INSTANCE", "TYPE", "LAST SYNC", "NEXT SYNC")
	for _, st := range statuses {
		last, next := st.LastSync, st.NextSync
		if last == "" {
			last, next = "never", "-"
		}
		fmt.Printf("  %-16s %-8s %-22s %s\n", st.Instance, st.Type, last, next)
	}
	return nil
}
