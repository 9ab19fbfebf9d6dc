package canopyrepl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	canopy "github.com/canopy-parse/canopy"
	"github.com/canopy-parse/canopy/forestdump"
	"github.com/canopy-parse/canopy/grammar"
)

// REPL reads lines from stdin, parses each against a fixed grammar through
// an Engine, and prints the winning parse tree. Commands prefixed with ':'
// are handled directly; everything else is treated as input text.
type REPL struct {
	engine *canopy.Engine
	repl   *readline.Instance
	last   string
}

// New builds a REPL over g, committing it if not already committed.
func New(g *grammar.Grammar) (*REPL, error) {
	engine, err := canopy.NewEngine(g)
	if err != nil {
		return nil, err
	}
	rl, err := readline.New("canopy> ")
	if err != nil {
		return nil, err
	}
	return &REPL{engine: engine, repl: rl}, nil
}

// Close releases the underlying readline instance.
func (r *REPL) Close() error { return r.repl.Close() }

// Run drives the read-eval-print loop until EOF (ctrl-D) or a :quit
// command.
func (r *REPL) Run() {
	pterm.Info.Println("Welcome to canopy. Type :help for commands, ctrl-D to quit.")
	for {
		line, err := r.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := r.eval(line, r.repl.Stdout()); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (r *REPL) eval(line string, w io.Writer) (quit bool) {
	switch {
	case line == ":quit" || line == ":q":
		return true
	case line == ":help":
		fmt.Fprintln(w, "  :quit          leave canopy")
		fmt.Fprintln(w, "  :dump          dump the grammar's rules and leaves")
		fmt.Fprintln(w, "  :last          re-parse the previous input")
		fmt.Fprintln(w, "  <text>         parse text against the grammar")
		return false
	case line == ":dump":
		fmt.Fprint(w, r.engine.Grammar().Dump())
		return false
	case line == ":last":
		line = r.last
	}
	r.last = line
	parse, err := r.engine.First(line)
	if err != nil {
		pterm.Error.WithWriter(w).Println(err.Error())
		return false
	}
	forestdump.Print(w, parse)
	forestdump.Summary(w, parse)
	return false
}
