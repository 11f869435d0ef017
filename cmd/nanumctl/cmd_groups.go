package main

import (
	"context"
	"fmt"
	"io"
	"nanum-admin/console"
	"strconv"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Aliases: []string{"group", "businesses"},
	Short:   "Manage aid groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return refreshGroups(cmd.Context(), cmd.OutOrStdout())
	},
}

var groupsShowCmd = &cobra.Command{
	Use:   "show <group-id>",
	Short: "Show one group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		group, err := client.GetGroup(cmd.Context(), id)
		if err != nil {
			return err
		}
		printGroup(cmd.OutOrStdout(), group)
		return nil
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group",
	Example: `  nanumctl groups create --name 겨울나눔 --org 행복복지관 --manager 홍길동 \
    --zipcode 06236 --address "서울 강남구 테헤란로 123" --mobile 010-1234-5678`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := console.NewGroupForm()
		if err := applyFormFlags(cmd, form, groupFieldFlags); err != nil {
			return err
		}
		input, err := form.Submit()
		if err != nil {
			return err
		}
		id, err := client.CreateGroup(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "그룹이 생성되었습니다. (ID %d)\n", id)
		return refreshGroups(cmd.Context(), cmd.OutOrStdout())
	},
}

var groupsUpdateCmd = &cobra.Command{
	Use:   "update <group-id>",
	Short: "Edit a group; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		group, err := client.GetGroup(cmd.Context(), id)
		if err != nil {
			return err
		}
		form := console.GroupFormFrom(group)
		if err := applyFormFlags(cmd, form, groupFieldFlags); err != nil {
			return err
		}
		input, err := form.Submit()
		if err != nil {
			return err
		}
		if err := client.UpdateGroup(cmd.Context(), id, input); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "그룹이 수정되었습니다.")
		return refreshGroups(cmd.Context(), cmd.OutOrStdout())
	},
}

var groupsDeleteCmd = &cobra.Command{
	Use:   "delete <group-id>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteGroup(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "그룹이 삭제되었습니다.")
		return refreshGroups(cmd.Context(), cmd.OutOrStdout())
	},
}

// refreshGroups re-fetches and prints the full list after a change
func refreshGroups(ctx context.Context, w io.Writer) error {
	groups, err := client.ListGroups(ctx)
	if err != nil {
		return err
	}
	printGroups(w, groups)
	return nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func init() {
	addFormFlags(groupsCreateCmd, groupFieldFlags)
	addFormFlags(groupsUpdateCmd, groupFieldFlags)
	groupsCmd.AddCommand(groupsListCmd, groupsShowCmd, groupsCreateCmd, groupsUpdateCmd, groupsDeleteCmd)
}
