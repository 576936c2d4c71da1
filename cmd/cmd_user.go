package cmd

import (
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/xufanglin/rimmich/i18n"
	"github.com/xufanglin/rimmich/tool"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage upload accounts",
	}

	addCmd := &cobra.Command{
		Use:   "add NAME APIKEY",
		Short: "Add an account or replace its api key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := currentText()
			if err := tool.AddUser(args[0], args[1]); err != nil {
				if errors.Is(err, tool.ErrIncompleteInput) {
					fmt.Fprintln(cmd.ErrOrStderr(), text.PleaseFillCompleteInfo())
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text.UserAdded())
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List accounts",
		Args:    cobra.NoArgs,
		RunE:    UserListHandler,
	}

	removeCmd := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tool.RemoveUser(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), currentText().UserDeleted(args[0]))
			return nil
		},
	}

	defaultCmd := &cobra.Command{
		Use:   "default NAME",
		Short: "Use NAME when no account is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tool.SetDefaultUser(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), currentText().DefaultUserChanged(args[0]))
			return nil
		},
	}

	userCmd.AddCommand(addCmd, listCmd, removeCmd, defaultCmd)
	return userCmd
}

// UserListHandler prints the stored accounts with masked keys.
func UserListHandler(cmd *cobra.Command, args []string) error {
	cfg := tool.GetCurrentConfig()
	names := tool.ListUsers()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), currentText().NoUsers())
		return nil
	}

	var data [][]string
	for _, name := range names {
		mark := ""
		if name == cfg.CurrentUser {
			mark = "*"
		}
		data = append(data, []string{name, tool.MaskAPIKey(cfg.Users[name].APIKey), mark})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"NAME", "API KEY", "DEFAULT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
	return nil
}

func currentText() i18n.I18n {
	return i18n.New(tool.GetCurrentConfig().Language)
}
