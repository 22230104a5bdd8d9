package cli

import (
	"bufio"
	"errors"
	"fmt"

	"smartphones/services/smartphone-cli/internal/client"

	"github.com/spf13/cobra"
)

var errNoCode = errors.New("a delete code is required")

func NewListCommand(opts *RootOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List smartphones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.router()
			if err != nil {
				return err
			}
			if err := r.Store().Refresh(cmd.Context()); err != nil {
				return err
			}
			r.SetFilter(filter)
			printTable(cmd.OutOrStdout(), r.Visible())
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show records whose nom or marque contains this text")
	return cmd
}

func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one smartphone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.router()
			if err != nil {
				return err
			}
			if err := r.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), r.Selected())
			return nil
		},
	}
}

func NewAddCommand(opts *RootOptions) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a smartphone",
		Example: `  smartphones add --set nom="iPhone 12" --set marque=Apple --set prix=999`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			r, err := opts.router()
			if err != nil {
				return err
			}
			if err := r.StartAdd(); err != nil {
				return err
			}
			if err := r.SubmitAdd(cmd.Context(), client.Smartphone(fields)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Smartphone added.")
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "field as key=value (repeatable)")
	return cmd
}

func NewEditCommand(opts *RootOptions) *cobra.Command {
	var (
		sets   []string
		unsets []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a smartphone",
		Long:  "Fetches the record, applies --set and --unset, then saves the whole record back.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			r, err := opts.router()
			if err != nil {
				return err
			}
			if err := r.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			if err := r.StartEdit(r.Selected()); err != nil {
				return err
			}

			phone := r.Editing()
			for k, v := range fields {
				phone[k] = v
			}
			for _, k := range unsets {
				delete(phone, k)
			}

			if err := r.SubmitEdit(cmd.Context(), phone); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Smartphone updated.")
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "field as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&unsets, "unset", nil, "field to remove (repeatable)")
	return cmd
}

func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a smartphone",
		Long:  "Deletes a smartphone. The delete code is prompted for when --code is not given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" {
				in := bufio.NewReader(cmd.InOrStdin())
				var err error
				code, err = prompt(in, cmd.OutOrStdout(), "Delete code: ")
				if err != nil || code == "" {
					return errNoCode
				}
			}

			r, err := opts.router()
			if err != nil {
				return err
			}
			if err := r.Delete(cmd.Context(), args[0], code); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Smartphone deleted.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&code, "code", "c", "", "delete code")
	return cmd
}
