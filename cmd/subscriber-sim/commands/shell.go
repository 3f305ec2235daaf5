package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/subscriber/pkg/scenario"
	"github.com/mash-protocol/subscriber/pkg/subscriber"
)

// reclaimAttempts bounds the GC cycles run by the drop command.
const reclaimAttempts = 10

// listener is a named subscriber that echoes every message it receives.
type listener struct {
	name string
	out  io.Writer
}

func (l *listener) Notify(msg *scenario.Message) {
	fmt.Fprintf(l.out, "  -> %s received #%d %q\n", l.name, msg.Seq, msg.Value)
}

// Shell drives a single collection interactively. It owns every listener it
// creates; the collection only holds weak references to them.
type Shell struct {
	coll  *subscriber.Collection[scenario.Message]
	owned map[string]*listener
	refs  map[string]subscriber.WeakRef[scenario.Message]
	out   io.Writer
	seq   int
}

// NewShell creates a shell over a new collection configured by config.
// Command output goes to out.
func NewShell(config subscriber.Config, out io.Writer) *Shell {
	return &Shell{
		coll:  subscriber.NewWithConfig[scenario.Message](config),
		owned: make(map[string]*listener),
		refs:  make(map[string]subscriber.WeakRef[scenario.Message]),
		out:   out,
	}
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "subscribers> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	for _, l := range s.owned {
		l.out = s.out
	}
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if quit := s.Execute(line); quit {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "add", "a":
		s.cmdAdd(args)
	case "drop", "d":
		s.cmdDrop(args)
	case "notify", "n":
		s.cmdNotify(args)
	case "has", "h":
		s.cmdHas(args)
	case "len", "l":
		fmt.Fprintf(s.out, "%d entries\n", s.coll.Len())
	case "list", "ls":
		s.cmdList()
	case "gc":
		runtime.GC()
		fmt.Fprintln(s.out, "GC complete")
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Subscriber Collection Commands:
  add <name>       - Register a listener (created on first use)
  drop <name>      - Release a listener and wait for it to be reclaimed
  notify [value]   - Deliver a message to every live listener
  has <name>       - Check whether a listener is registered and alive
  len              - Show the number of stored entries
  list             - Show the listeners still owned by the shell
  gc               - Run a garbage collection cycle
  help             - Show this help
  quit             - Exit`)
}

func (s *Shell) cmdAdd(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: add <name>")
		return
	}
	name := args[0]

	l, ok := s.owned[name]
	if !ok {
		l = &listener{name: name, out: s.out}
		s.owned[name] = l
		s.refs[name] = subscriber.Downgrade[scenario.Message](l)
	}
	s.coll.Add(subscriber.Downgrade[scenario.Message](l))
	fmt.Fprintf(s.out, "Added %s (%d entries)\n", name, s.coll.Len())
}

func (s *Shell) cmdDrop(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: drop <name>")
		return
	}
	name := args[0]

	if _, ok := s.owned[name]; !ok {
		fmt.Fprintf(s.out, "No listener named %s\n", name)
		return
	}
	delete(s.owned, name)

	ref := s.refs[name]
	for range reclaimAttempts {
		runtime.GC()
		if ref.Expired() {
			fmt.Fprintf(s.out, "Dropped %s (reclaimed, %d entries until next notify)\n", name, s.coll.Len())
			return
		}
	}
	fmt.Fprintf(s.out, "Dropped %s (not yet reclaimed)\n", name)
}

func (s *Shell) cmdNotify(args []string) {
	s.seq++
	msg := scenario.Message{Seq: s.seq, Value: strings.Join(args, " ")}
	s.coll.Notify(&msg)
	fmt.Fprintf(s.out, "Notified #%d (%d entries)\n", msg.Seq, s.coll.Len())
}

func (s *Shell) cmdHas(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: has <name>")
		return
	}
	// Unknown and reclaimed names yield a nil candidate.
	found := s.coll.HasSubscriber(s.refs[args[0]].Upgrade())
	fmt.Fprintf(s.out, "%s: %t\n", args[0], found)
}

func (s *Shell) cmdList() {
	names := make([]string, 0, len(s.owned))
	for name := range s.owned {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No listeners")
		return
	}
	fmt.Fprintf(s.out, "Listeners: %s\n", strings.Join(names, ", "))
}
