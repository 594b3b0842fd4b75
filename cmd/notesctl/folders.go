package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *cli) newFoldersCmd() *cobra.Command {
	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "Folder operations",
	}

	foldersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List folders alphabetically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			folders, err := c.ListFolders(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), folders)
		},
	})

	foldersCmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			folder, err := c.CreateFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("folder created", "folder_id", folder.ID)
			return printJSON(cmd.OutOrStdout(), folder)
		},
	})

	foldersCmd.AddCommand(&cobra.Command{
		Use:   "get FOLDER_ID",
		Short: "Show a folder with its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			folder, err := c.GetFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), folder)
		},
	})

	foldersCmd.AddCommand(&cobra.Command{
		Use:   "rename FOLDER_ID NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			folder, err := c.UpdateFolder(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), folder)
		},
	})

	foldersCmd.AddCommand(&cobra.Command{
		Use:   "delete FOLDER_ID",
		Short: "Delete a folder and all its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			msg, err := c.DeleteFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	})

	return foldersCmd
}
