package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *cli) newNotesCmd() *cobra.Command {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Note operations, always scoped to a folder",
	}

	notesCmd.AddCommand(&cobra.Command{
		Use:   "list FOLDER_ID",
		Short: "List a folder's notes, most recently updated first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			notes, err := c.ListNotes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), notes)
		},
	})

	var title, content string
	createCmd := &cobra.Command{
		Use:   "create FOLDER_ID",
		Short: "Create a note in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			note, err := c.CreateNote(cmd.Context(), args[0], title, content)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), note)
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Note title (required)")
	createCmd.Flags().StringVarP(&content, "content", "c", "", "Note content")
	notesCmd.AddCommand(createCmd)

	notesCmd.AddCommand(&cobra.Command{
		Use:   "get FOLDER_ID NOTE_ID",
		Short: "Show a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			note, err := c.GetNote(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), note)
		},
	})

	var newTitle, newContent string
	updateCmd := &cobra.Command{
		Use:   "update FOLDER_ID NOTE_ID",
		Short: "Update a note's title and/or content; omitted flags keep the stored value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var titlePtr, contentPtr *string
			if cmd.Flags().Changed("title") {
				titlePtr = &newTitle
			}
			if cmd.Flags().Changed("content") {
				contentPtr = &newContent
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			note, err := c.UpdateNote(cmd.Context(), args[0], args[1], titlePtr, contentPtr)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), note)
		},
	}
	updateCmd.Flags().StringVarP(&newTitle, "title", "t", "", "New title")
	updateCmd.Flags().StringVarP(&newContent, "content", "c", "", "New content")
	notesCmd.AddCommand(updateCmd)

	notesCmd.AddCommand(&cobra.Command{
		Use:   "delete FOLDER_ID NOTE_ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			msg, err := c.DeleteNote(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	})

	return notesCmd
}
