package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/service"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the dashboard theme",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTheme,
	}
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	storage, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if len(args) == 0 {
		theme, err := storage.LoadTheme(ctx)
		if err != nil {
			return err
		}
		fmt.Println(string(theme))
		return nil
	}

	var theme service.Theme
	switch args[0] {
	case "dark":
		theme = service.ThemeDark
	case "light":
		theme = service.ThemeLight
	default:
		return fmt.Errorf("unknown theme %q (want dark or light)", args[0])
	}

	if err := storage.SaveTheme(ctx, theme); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Theme set to %s.", theme)))
	return nil
}
