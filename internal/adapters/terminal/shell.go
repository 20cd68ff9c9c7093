// Package terminal is an interactive storefront shell: every command acts
// on a storefront session and the resulting page is printed back.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/phenrril/bfguitars/internal/storefront"
)

var errUsage = errors.New("bad arguments, type 'help'")

type Shell struct {
	session *storefront.Session
	out     io.Writer
	tabs    []string
}

// NewShell builds a shell over session. categories become the product tabs
// between the featured tab and the diy/faq tabs.
func NewShell(session *storefront.Session, out io.Writer, categories []string) *Shell {
	tabs := append([]string{storefront.TabFeatured}, categories...)
	tabs = append(tabs, storefront.TabDIY, storefront.TabFAQ)
	return &Shell{session: session, out: out, tabs: tabs}
}

// Run reads commands until exit, EOF or interrupt.
func (s *Shell) Run(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[1;36mbfguitars>\033[0m ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      s.completer(),
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(s.out, "BF Guitars storefront. Type 'help' for commands, 'exit' to quit.")
	s.show()
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		quit, err := s.Exec(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "\033[1;31mError:\033[0m %v\n", err)
		}
		if quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}

// Exec runs one command line and prints the page afterwards.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "exit", "quit", `\q`:
		return true, nil
	case "help", "?":
		fmt.Fprint(s.out, help)
		return false, nil
	case "show":
	case "home":
		err = s.session.Home()
	case "tab":
		if len(args) != 1 {
			return false, errUsage
		}
		err = s.session.SelectTab(ctx, args[0])
	case "cart":
		err = s.session.OpenCart()
	case "open":
		id, perr := oneInt(args)
		if perr != nil {
			return false, perr
		}
		err = s.session.OpenProduct(ctx, id)
	case "add":
		_, err = s.session.AddToCart()
	case "qty":
		if len(args) != 2 {
			return false, errUsage
		}
		n, perr := strconv.Atoi(args[1])
		if perr != nil {
			return false, errUsage
		}
		_, err = s.session.ChangeQuantity(args[0], n)
	case "rm":
		if len(args) != 1 {
			return false, errUsage
		}
		err = s.session.RemoveLine(args[0])
	case "checkout":
		err = s.session.SubmitOrder()
	case "set":
		if len(args) < 2 {
			return false, errUsage
		}
		err = s.session.Form(formOf(args[0])).Set(args[1], strings.Join(args[2:], " "))
	case "submit":
		if len(args) != 1 {
			return false, errUsage
		}
		if formOf(args[0]) == storefront.FormFeedback {
			err = s.session.SubmitFeedback(ctx)
		} else {
			err = s.session.SubmitDIY(ctx)
		}
	case "reload":
		s.session.Reload()
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	s.show()
	return false, err
}

func (s *Shell) show() {
	fmt.Fprintln(s.out, Render(s.session.Snapshot(), s.tabs))
}

func formOf(name string) storefront.FormKind {
	switch strings.ToLower(name) {
	case "feedback", storefront.TabFAQ:
		return storefront.FormFeedback
	}
	return storefront.FormDIY
}

func oneInt(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errUsage
	}
	return n, nil
}

func (s *Shell) completer() *readline.PrefixCompleter {
	tabs := make([]readline.PrefixCompleterInterface, 0, len(s.tabs))
	for _, t := range s.tabs {
		tabs = append(tabs, readline.PcItem(t))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("tab", tabs...),
		readline.PcItem("home"),
		readline.PcItem("cart"),
		readline.PcItem("open"),
		readline.PcItem("add"),
		readline.PcItem("qty"),
		readline.PcItem("rm"),
		readline.PcItem("checkout"),
		readline.PcItem("set", readline.PcItem("diy"), readline.PcItem("feedback")),
		readline.PcItem("submit", readline.PcItem("diy"), readline.PcItem("feedback")),
		readline.PcItem("show"),
		readline.PcItem("reload"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

const help = `Commands:
  tab <name>                  featured, a category, diy or faq
  home                        back to the featured page
  open <id>                   show one product from the listing
  add                         add the open product to the cart
  cart                        show the cart
  qty <key> <n>               change a cart line's quantity
  rm <key>                    remove a cart line
  checkout                    place the order
  set diy <field> <value>     fill a DIY field (type neck body color engrave engrave-text)
  set feedback <field> <value>
  submit diy|feedback         post a form
  show                        print the page again
  reload                      start over after an error
  exit                        leave
`
