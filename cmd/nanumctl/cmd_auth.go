package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <business-number>",
	Short: "Sign in with a business number",
	Long: `Signs in and stores the session token.

The password is read from --password or NANUM_PASSWORD.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("NANUM_PASSWORD")
		}
		if password == "" {
			return errors.New("사업자번호와 비밀번호를 입력해주세요.")
		}
		user, err := client.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) 로그인되었습니다.\n", user.OrgName, user.BusinessNumber)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Logout(cmd.Context()); err != nil {
			// the local session is gone either way
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "로그아웃되었습니다.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.Verify(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.OrgID, user.OrgName, user.BusinessNumber)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
}
