package browser

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const sessionHelp = `Commands:
  ls                  reload folders and notes
  open REF            select note REF (e.g. 1.2) or toggle folder REF (e.g. 1)
  toggle REF          expand or collapse folder REF
  close               clear the selected note
  new-folder          create a folder
  new-note REF        create a note in folder REF
  rename REF          rename folder REF
  edit REF            edit note REF
  rm REF              delete folder or note REF
  help                show this help
  quit                leave`

// Session is an interactive line-oriented loop over a Controller
type Session struct {
	controller *Controller
	prompter   *TerminalPrompter
	out        io.Writer
}

func NewSession(controller *Controller, prompter *TerminalPrompter, out io.Writer) *Session {
	return &Session{controller: controller, prompter: prompter, out: out}
}

// Run loads the tree and processes commands until quit, end of input or ctx
// is cancelled. Failed mutations are already alerted by the controller.
func (s *Session) Run(ctx context.Context) error {
	_ = s.controller.Load(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, "> ")
		line, ok := s.prompter.ReadLine()
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := s.dispatch(ctx, cmd, arg); err != nil {
			s.prompter.Alert(err.Error())
		}
	}
}

func (s *Session) dispatch(ctx context.Context, cmd, arg string) error {
	c := s.controller

	switch cmd {
	case "":
		return nil
	case "help", "?":
		fmt.Fprintln(s.out, sessionHelp)
		return nil
	case "ls", "reload":
		_ = c.Load(ctx)
		return nil
	case "close":
		c.ClearSelection()
		return nil
	case "new-folder":
		_ = c.CreateFolder(ctx)
		return nil
	}

	if arg == "" {
		return fmt.Errorf("%s needs a reference, see help", cmd)
	}
	folderID, noteID, err := c.Snapshot().Resolve(arg)
	if err != nil {
		return err
	}

	switch cmd {
	case "open":
		if noteID == "" {
			return c.ToggleFolder(folderID)
		}
		return c.SelectNote(folderID, noteID)
	case "toggle":
		return c.ToggleFolder(folderID)
	case "new-note":
		_ = c.CreateNote(ctx, folderID)
	case "rename":
		_ = c.RenameFolder(ctx, folderID)
	case "edit":
		if noteID == "" {
			return fmt.Errorf("edit needs a note reference like 1.2")
		}
		_ = c.EditNote(ctx, folderID, noteID)
	case "rm":
		if noteID == "" {
			_ = c.DeleteFolder(ctx, folderID)
		} else {
			_ = c.DeleteNote(ctx, folderID, noteID)
		}
	default:
		return fmt.Errorf("unknown command %q, see help", cmd)
	}
	return nil
}
