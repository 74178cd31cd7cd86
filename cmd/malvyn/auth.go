package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/auth"
	"github.com/marvus-creator/Malvyn/internal/cli"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a profile and sign in",
		Long: `Create a local profile and sign in as it.

All fields are required. The password is hashed before it is stored;
registering signs you in immediately.`,
		RunE: runRegister,
	}

	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "email address (used to sign in)")
	cmd.Flags().String("password", "", "password (prompted if omitted)")

	return cmd
}

func runRegister(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if name == "" {
		if name, err = promptLine("Name"); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return err
		}
	}

	storage, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	gate := auth.NewGate(storage, nil)
	if err := gate.Register(ctx, name, email, password); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome, %s! You are signed in.", name)))
	return nil
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing profile",
		RunE:  runLogin,
	}

	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password (prompted if omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return err
		}
	}

	storage, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	gate := auth.NewGate(storage, nil)
	name, err := gate.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome back, %s!", name)))
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			storage, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer storage.Close()

			gate := auth.NewGate(storage, nil)
			if err := gate.SignOut(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Signed out."))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			storage, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer storage.Close()

			gate := auth.NewGate(storage, nil)
			name, err := gate.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Println(cli.SubtleStyle.Render("Not signed in."))
				return nil
			}

			fmt.Println(name)
			return nil
		},
	}
}

// promptLine reads one line of input from stdin.
func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
