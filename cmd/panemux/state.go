package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/panemux/internal/appconfig"
	"pkt.systems/panemux/internal/logx"
	"pkt.systems/panemux/internal/persist"
	"pkt.systems/panemux/schema"
)

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect the persisted workspace snapshot",
	}
	cmd.AddCommand(newStateShowCmd())
	cmd.AddCommand(newStateValidateCmd())
	return cmd
}

func newStateShowCmd() *cobra.Command {
	var cfgPath string
	var stateDir string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the persisted workspace topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, found, err := loadSnapshot(cmd, cfgPath, stateDir)
			if err != nil {
				return err
			}
			if !found {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no workspace snapshot")
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "config file path")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "state directory override")
	return cmd
}

func newStateValidateCmd() *cobra.Command {
	var cfgPath string
	var stateDir string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the persisted snapshot for structural defects",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, found, err := loadSnapshot(cmd, cfgPath, stateDir)
			if err != nil {
				return err
			}
			if !found {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no workspace snapshot")
				return err
			}
			if err := schema.ValidateSnapshot(snap); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tabs\n", len(snap.Tabs))
			return err
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "config file path")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "state directory override")
	return cmd
}

func loadSnapshot(cmd *cobra.Command, cfgPath, stateDir string) (schema.WorkspaceSnapshot, bool, error) {
	if stateDir == "" {
		cfg, err := appconfig.Load(cfgPath)
		if err != nil {
			return schema.WorkspaceSnapshot{}, false, err
		}
		stateDir = cfg.StateDir
	}
	store, err := persist.NewStoreWithLogger(stateDir, logx.Ctx(cmd.Context()))
	if err != nil {
		return schema.WorkspaceSnapshot{}, false, err
	}
	return store.Load()
}

func printSnapshot(w io.Writer, snap schema.WorkspaceSnapshot) error {
	for i, tab := range snap.Tabs {
		marker := " "
		if i == snap.ActiveTabIndex {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s tab %s (%s)\n", marker, tab.Name, tab.ID); err != nil {
			return err
		}
		if err := printNode(w, tab.Tree, tab.ActivePaneID, 1); err != nil {
			return err
		}
	}
	return nil
}

func printNode(w io.Writer, node *schema.NodeSnapshot, active schema.PaneID, depth int) error {
	indent := strings.Repeat("  ", depth)
	if node.Type == schema.NodeTypeLeaf {
		marker := ""
		if node.Pane.ID == active {
			marker = " (active)"
		}
		_, err := fmt.Fprintf(w, "%spane %s [%s]%s\n", indent, node.Pane.ID, node.Pane.ProviderID, marker)
		return err
	}
	if _, err := fmt.Fprintf(w, "%ssplit %s %.2f\n", indent, node.Orientation, node.Ratio); err != nil {
		return err
	}
	if err := printNode(w, node.First, active, depth+1); err != nil {
		return err
	}
	return printNode(w, node.Second, active, depth+1)
}
