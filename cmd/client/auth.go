package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var password string

var registerCmd = &cobra.Command{
	Use:   "register LOGIN",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pass, err := promptPassword(cmd)
		if err != nil {
			return err
		}
		if err = app.Register(cmd.Context(), args[0], pass); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered and signed in as %s.\n", args[0])
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login LOGIN",
	Short: "Sign in to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pass, err := promptPassword(cmd)
		if err != nil {
			return err
		}
		if err = app.Login(cmd.Context(), args[0], pass); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", args[0])
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func promptPassword(cmd *cobra.Command) (string, error) {
	if password != "" {
		return password, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pass, err := readLine(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if pass == "" {
		return "", errors.New("password is required")
	}
	return pass, nil
}

func init() {
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when empty)")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when empty)")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
}
