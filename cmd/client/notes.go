package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-six-notes/internal/tui"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	editText string
	rawShow  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the six note slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := app.Selected(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderNoteList(app.Notes(), selected))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [SLOT]",
	Short: "Print a note (the selected one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args)
		if err != nil {
			return err
		}
		note, err := app.Note(cmd.Context(), slot)
		if err != nil {
			return err
		}
		if rawShow {
			fmt.Fprint(cmd.OutOrStdout(), note.Content)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderNote(note))
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select SLOT",
	Short: "Make SLOT the default for show, edit and copy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args)
		if err != nil {
			return err
		}
		return app.Select(cmd.Context(), slot)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [SLOT]",
	Short: "Replace a note with --text or with stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args)
		if err != nil {
			return err
		}
		if slot < 0 {
			if slot, err = app.Selected(cmd.Context()); err != nil {
				return err
			}
		}

		content := editText
		if !cmd.Flags().Changed("text") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			content = string(data)
		}

		_, changed, err := app.Edit(cmd.Context(), slot, content)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d unchanged.\n", slot)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note %d saved.\n", slot)

		if err = app.SyncIfEnabled(cmd.Context()); err != nil {
			// the edit is stored locally and will be uploaded by the next pass
			fmt.Fprintln(cmd.ErrOrStderr(), "Sync postponed:", describe(err))
		}
		return nil
	},
}

var plainCmd = &cobra.Command{
	Use:   "plain SLOT on|off",
	Short: "Toggle plain-text rendering of a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[:1])
		if err != nil {
			return err
		}
		plain, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		return app.SetPlainText(cmd.Context(), slot, plain)
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy [SLOT]",
	Short: "Copy a note to the system clipboard",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args)
		if err != nil {
			return err
		}
		note, err := app.Note(cmd.Context(), slot)
		if err != nil {
			return err
		}
		if strings.TrimSpace(note.Content) == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d is empty, nothing copied.\n", note.ID)
			return nil
		}
		if err = clipboard.WriteAll(note.Content); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note %d copied to clipboard.\n", note.ID)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&rawShow, "raw", false, "Print only the note content")
	editCmd.Flags().StringVarP(&editText, "text", "t", "", "New note content (stdin when omitted)")

	rootCmd.AddCommand(listCmd, showCmd, selectCmd, editCmd, plainCmd, copyCmd)
}
