package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// Shell runs the line-oriented command loop on top of a Controller. Input
// is read one line at a time; every command runs to completion (including
// its network call) before the next line is read, so all state mutation is
// serialized on this one goroutine.
type Shell struct {
	ctrl *Controller
	in   io.Reader
	out  io.Writer
}

// New creates a shell reading commands from in and rendering to out.
func New(ctrl *Controller, in io.Reader, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, in: in, out: out}
}

// Run drives the loop until the input ends, the user quits, or ctx is
// cancelled. apiURL is only displayed, so the user can tell which backend
// they are talking to.
func (s *Shell) Run(ctx context.Context, apiURL string) error {
	fmt.Fprintf(s.out, "storectl\nAPI: %s\n\n", apiURL)

	s.enter(ctx, s.ctrl.Mode())
	s.prompt()

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			s.prompt()
			continue
		}

		before := s.ctrl.Mode()
		quit := s.handle(ctx, line)
		if msg := s.ctrl.Message(); msg != "" {
			fmt.Fprintln(s.out, msg)
		}
		if quit {
			return nil
		}
		if after := s.ctrl.Mode(); after != before {
			s.enter(ctx, after)
		}
		s.prompt()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}

// enter renders a panel on arrival, fetching whatever it depends on.
func (s *Shell) enter(ctx context.Context, m Mode) {
	switch m {
	case ModeAuth:
		s.renderAuth()
	case ModeShop:
		if len(s.ctrl.Catalog()) == 0 {
			s.ctrl.RefreshCatalog(ctx)
			if msg := s.ctrl.Message(); msg != "" {
				fmt.Fprintln(s.out, msg)
			}
		}
		s.renderShop()
	case ModeOrders:
		s.ctrl.RefreshOrders(ctx)
		if msg := s.ctrl.Message(); msg != "" {
			fmt.Fprintln(s.out, msg)
		}
		s.renderOrders()
	}
}

func (s *Shell) prompt() {
	fmt.Fprintf(s.out, "[%s]> ", s.ctrl.Mode())
}

// handle dispatches one command line. It reports whether the loop should
// stop.
func (s *Shell) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	zctx.From(ctx).Debug("Command", zap.String("cmd", cmd), zap.String("mode", string(s.ctrl.Mode())))

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		s.renderHelp()
		return false
	}

	switch s.ctrl.Mode() {
	case ModeAuth:
		s.handleAuth(ctx, cmd, args)
	case ModeShop:
		s.handleShop(ctx, cmd, args)
	case ModeOrders:
		s.handleOrders(ctx, cmd, args)
	}
	return false
}

func (s *Shell) handleAuth(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "signup":
		if len(args) != 3 {
			fmt.Fprintln(s.out, "usage: signup <name> <email> <password>")
			return
		}
		s.ctrl.SetAuthMode(AuthRegister)
		s.ctrl.SubmitAuth(ctx, args[0], args[1], args[2])
	case "signin":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "usage: signin <email> <password>")
			return
		}
		s.ctrl.SetAuthMode(AuthLogin)
		s.ctrl.SubmitAuth(ctx, "", args[0], args[1])
	default:
		s.unknown(cmd)
	}
}

func (s *Shell) handleShop(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "list":
		s.ctrl.RefreshCatalog(ctx)
		s.renderShop()
	case "add", "rm":
		if len(args) != 1 {
			fmt.Fprintf(s.out, "usage: %s <number|product-id>\n", cmd)
			return
		}
		p, ok := s.ctrl.Resolve(args[0])
		if !ok {
			fmt.Fprintf(s.out, "no such product: %s\n", args[0])
			return
		}
		if cmd == "add" {
			s.ctrl.Add(p)
		} else {
			s.ctrl.Remove(p)
		}
	case "cart":
		s.renderCart()
	case "pay":
		s.ctrl.Pay(ctx)
	case "orders":
		s.ctrl.EnterOrders()
	case "logout":
		s.ctrl.Logout()
	default:
		s.unknown(cmd)
	}
}

func (s *Shell) handleOrders(ctx context.Context, cmd string, _ []string) {
	switch cmd {
	case "refresh":
		s.ctrl.RefreshOrders(ctx)
		s.renderOrders()
	case "shop":
		s.ctrl.EnterShop()
	case "logout":
		s.ctrl.Logout()
	default:
		s.unknown(cmd)
	}
}

func (s *Shell) unknown(cmd string) {
	fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
}
