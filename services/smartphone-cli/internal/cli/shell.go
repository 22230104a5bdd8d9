package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"smartphones/services/smartphone-cli/internal/client"
	"smartphones/services/smartphone-cli/internal/view"

	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  list                   reload and show the list
  filter [text]          filter the list by nom or marque (no reload)
  show <id>              open a smartphone
  add [key=value ...]    open the add form; with fields, save right away
  edit [id] [key=value]  edit the open smartphone, or <id> from the list
  save [key=value ...]   save the add or edit form
  delete <id> [code]     delete from the list
  cancel                 back to the list
  retry                  clear the error and reload
  help                   this text
  quit                   leave the shell`

func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.router()
			if err != nil {
				return err
			}
			sh := &shell{
				router: r,
				in:     bufio.NewReader(cmd.InOrStdin()),
				out:    cmd.OutOrStdout(),
			}
			return sh.run(cmd.Context())
		},
	}
}

type shell struct {
	router *view.Router
	in     *bufio.Reader
	out    io.Writer

	// draft holds fields typed into the add form.
	draft client.Smartphone
}

func (s *shell) run(ctx context.Context) error {
	s.router.Store().Refresh(ctx)
	s.render()

	for {
		line, err := prompt(s.in, s.out, fmt.Sprintf("smartphones[%s]> ", s.router.State()))
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
		fields := splitArgs(line)
		if len(fields) == 0 {
			continue
		}
		name, args := fields[0], fields[1:]
		if name == "quit" || name == "exit" {
			return nil
		}
		if err := s.exec(ctx, name, args); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *shell) exec(ctx context.Context, name string, args []string) error {
	r := s.router
	switch name {
	case "help":
		fmt.Fprintln(s.out, shellHelp)
		return nil

	case "list", "ls":
		if r.State() != view.StateList {
			if err := r.Cancel(); err != nil {
				return err
			}
		}
		r.Store().Refresh(ctx)
		s.render()
		return nil

	case "filter":
		r.SetFilter(strings.Join(args, " "))
		s.render()
		return nil

	case "retry":
		r.Store().Retry(ctx)
		s.render()
		return nil

	case "show":
		if len(args) != 1 {
			return errors.New("usage: show <id>")
		}
		if err := r.Select(ctx, args[0]); err != nil {
			return err
		}
		s.render()
		return nil

	case "add":
		if err := r.StartAdd(); err != nil {
			return err
		}
		s.draft = client.Smartphone{}
		if len(args) == 0 {
			fmt.Fprintln(s.out, "Add form open. Use 'save key=value ...' or 'cancel'.")
			return nil
		}
		return s.save(ctx, args)

	case "edit":
		phone := r.Selected()
		if r.State() == view.StateList {
			if len(args) == 0 {
				return errors.New("usage: edit <id> [key=value ...]")
			}
			phone = s.find(args[0])
			if phone == nil {
				return fmt.Errorf("no smartphone %q in the list", args[0])
			}
			args = args[1:]
		}
		if err := r.StartEdit(phone); err != nil {
			return err
		}
		if len(args) == 0 {
			s.render()
			return nil
		}
		return s.save(ctx, args)

	case "save":
		return s.save(ctx, args)

	case "delete", "rm":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: delete <id> [code]")
		}
		code := ""
		if len(args) == 2 {
			code = args[1]
		} else {
			var err error
			if code, err = prompt(s.in, s.out, "Delete code: "); err != nil || code == "" {
				return errNoCode
			}
		}
		if err := r.Delete(ctx, args[0], code); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Smartphone deleted.")
		s.render()
		return nil

	case "cancel", "back":
		if err := r.Cancel(); err != nil {
			return err
		}
		s.draft = nil
		s.render()
		return nil
	}
	return fmt.Errorf("unknown command %q (try 'help')", name)
}

func (s *shell) save(ctx context.Context, args []string) error {
	fields, err := parseAssignments(args)
	if err != nil {
		return err
	}

	r := s.router
	switch r.State() {
	case view.StateAdd:
		for k, v := range fields {
			s.draft[k] = v
		}
		if err := r.SubmitAdd(ctx, s.draft); err != nil {
			return err
		}
		s.draft = nil
		fmt.Fprintln(s.out, "Smartphone added.")
	case view.StateEdit:
		phone := r.Editing()
		for k, v := range fields {
			phone[k] = v
		}
		if err := r.SubmitEdit(ctx, phone); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Smartphone updated.")
	default:
		return fmt.Errorf("nothing to save from %s", r.State())
	}
	s.render()
	return nil
}

func (s *shell) find(id string) client.Smartphone {
	for _, p := range s.router.Store().Phones() {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

func (s *shell) render() {
	r := s.router
	if err := r.Store().Err(); err != nil {
		fmt.Fprintf(s.out, "Error: %v (type 'retry')\n", err)
	}
	switch r.State() {
	case view.StateList:
		if f := r.Filter(); f != "" {
			fmt.Fprintf(s.out, "Filter: %q\n", f)
		}
		printTable(s.out, r.Visible())
	case view.StateDetail:
		printDetail(s.out, r.Selected())
	case view.StateEdit:
		printDetail(s.out, r.Editing())
	}
}

// splitArgs splits on spaces; double quotes group words and are dropped.
func splitArgs(line string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			quoted = !quoted
			started = true
		case (ch == ' ' || ch == '\t') && !quoted:
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(ch)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}
