package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/engine"
	"github.com/leengari/relalg/internal/printer"
)

const help = `Commands:
  ls                              list tables
  show <table>                    print a table
  select <table> <condition>      e.g. select movie year < 1980
  project <table> <attributes>    e.g. project movie title year
  union <left> <right>
  minus <left> <right>
  join <left> <right> <condition> e.g. join movie studio studioName == name
  drop <table>
  exit | \q`

// Start reads commands from in until EOF or exit, printing results to out
func Start(eng *engine.Engine, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to the movie database")
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or '\\q' to quit.")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "\\q" {
			return
		}

		if err := Execute(eng, line, out); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// Execute runs one command line
func Execute(eng *engine.Engine, line string, out io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	var (
		result *schema.Table
		err    error
	)
	switch cmd {
	case "help":
		fmt.Fprintln(out, help)
		return nil

	case "ls", "list":
		fmt.Fprintln(out, "Tables:")
		for _, name := range eng.ListTables() {
			fmt.Fprintf(out, "  - %s\n", name)
		}
		return nil

	case "show":
		if err := arity(cmd, args, 1); err != nil {
			return err
		}
		t, ok := eng.Table(args[0])
		if !ok {
			return &engine.TableNotFoundError{Name: args[0]}
		}
		return printer.Render(out, t)

	case "drop":
		if err := arity(cmd, args, 1); err != nil {
			return err
		}
		if err := eng.Drop(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Table '%s' dropped\n", args[0])
		return nil

	case "select":
		if err := arity(cmd, args, 1); err != nil {
			return err
		}
		result, err = eng.Select(args[0], strings.Join(args[1:], " "))

	case "project":
		if err := arity(cmd, args, 2); err != nil {
			return err
		}
		result, err = eng.Project(args[0], strings.Join(args[1:], " "))

	case "union", "minus":
		if err := arity(cmd, args, 2); err != nil {
			return err
		}
		if cmd == "union" {
			result, err = eng.Union(args[0], args[1])
		} else {
			result, err = eng.Minus(args[0], args[1])
		}

	case "join":
		if err := arity(cmd, args, 2); err != nil {
			return err
		}
		result, err = eng.Join(args[0], strings.Join(args[2:], " "), args[1])

	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}

	if err != nil {
		return err
	}
	return printer.Render(out, result)
}

func arity(cmd string, args []string, want int) error {
	if len(args) < want {
		return fmt.Errorf("%s needs at least %d argument(s)", cmd, want)
	}
	return nil
}
