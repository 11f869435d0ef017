package main

import (
	"context"
	"fmt"
	"io"
	"nanum-admin/console"

	"github.com/spf13/cobra"
)

var targetGroupID string

var targetsCmd = &cobra.Command{
	Use:     "targets",
	Aliases: []string{"target"},
	Short:   "Manage the recipients of a group",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if targetGroupID == "" {
			return fmt.Errorf("--group is required")
		}
		return nil
	},
}

func groupFlag() (uint, error) {
	return parseID(targetGroupID)
}

var targetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a group's recipients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gid, err := groupFlag()
		if err != nil {
			return err
		}
		return refreshTargets(cmd.Context(), cmd.OutOrStdout(), gid)
	},
}

var targetsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recipients by name or phone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gid, err := groupFlag()
		if err != nil {
			return err
		}
		targets, err := client.SearchTargets(cmd.Context(), gid, args[0])
		if err != nil {
			return err
		}
		printTargets(cmd.OutOrStdout(), targets)
		return nil
	},
}

var targetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a recipient",
	Example: `  nanumctl targets create --group 3 --name 김철수 --type 수급자 --household 독거어르신 \
    --zipcode 06236 --address "서울 강남구 테헤란로 123" --mobile 010-1234-5678 --reason "..."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gid, err := groupFlag()
		if err != nil {
			return err
		}
		form := console.NewTargetForm()
		if err := applyFormFlags(cmd, form, targetFieldFlags); err != nil {
			return err
		}
		input, err := form.Submit()
		if err != nil {
			return err
		}
		id, err := client.CreateTarget(cmd.Context(), gid, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "대상자가 생성되었습니다. (ID %d)\n", id)
		return refreshTargets(cmd.Context(), cmd.OutOrStdout(), gid)
	},
}

var targetsUpdateCmd = &cobra.Command{
	Use:   "update <target-id>",
	Short: "Edit a recipient; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gid, err := groupFlag()
		if err != nil {
			return err
		}
		tid, err := parseID(args[0])
		if err != nil {
			return err
		}
		target, err := client.GetTarget(cmd.Context(), gid, tid)
		if err != nil {
			return err
		}
		form := console.TargetFormFrom(target)
		if err := applyFormFlags(cmd, form, targetFieldFlags); err != nil {
			return err
		}
		input, err := form.Submit()
		if err != nil {
			return err
		}
		if err := client.UpdateTarget(cmd.Context(), gid, tid, input); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "대상자 정보가 수정되었습니다.")
		return refreshTargets(cmd.Context(), cmd.OutOrStdout(), gid)
	},
}

var targetsDeleteCmd = &cobra.Command{
	Use:   "delete <target-id>",
	Short: "Remove a recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gid, err := groupFlag()
		if err != nil {
			return err
		}
		tid, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteTarget(cmd.Context(), gid, tid); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "대상자가 삭제되었습니다.")
		return refreshTargets(cmd.Context(), cmd.OutOrStdout(), gid)
	},
}

func refreshTargets(ctx context.Context, w io.Writer, groupID uint) error {
	targets, err := client.ListTargets(ctx, groupID)
	if err != nil {
		return err
	}
	printTargets(w, targets)
	return nil
}

func init() {
	targetsCmd.PersistentFlags().StringVarP(&targetGroupID, "group", "g", "", "group id")
	addFormFlags(targetsCreateCmd, targetFieldFlags)
	addFormFlags(targetsUpdateCmd, targetFieldFlags)
	targetsCmd.AddCommand(targetsListCmd, targetsSearchCmd, targetsCreateCmd, targetsUpdateCmd, targetsDeleteCmd)
}
