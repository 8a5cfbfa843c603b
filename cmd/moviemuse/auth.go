package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup [username]",
	Short: "Create an account",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and store a session token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := clearToken(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	signupCmd.Flags().String("password", "", "Password (prompted if omitted)")
	loginCmd.Flags().String("password", "", "Password (prompted if omitted)")
}

func credentials(cmd *cobra.Command, args []string) (string, string) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		username = promptRequired("Username: ")
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = promptRequired("Password: ")
	}
	return username, password
}

func runSignup(cmd *cobra.Command, args []string) error {
	username, password := credentials(cmd, args)

	c := newClient()
	if err := c.Signup(cmd.Context(), username, password); err != nil {
		return err
	}

	session, err := c.Login(cmd.Context(), username, password)
	if err != nil {
		fmt.Printf("Account created. Run 'moviemuse login %s' to log in.\n", username)
		return nil
	}
	if err := saveToken(session.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Printf("Account created, logged in as %s\n", session.Username)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, password := credentials(cmd, args)

	session, err := newClient().Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}
	if err := saveToken(session.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Printf("Logged in as %s\n", session.Username)
	return nil
}
