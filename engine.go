// Package scopecmd contains a CLI-driven engine for reading console commands
// and applying them to a traffic simulation until the controller quits.
package scopecmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/input"
	"github.com/tracon/scopecmd/internal/log"
	"github.com/tracon/scopecmd/internal/scenario"
	"github.com/tracon/scopecmd/internal/scoperr"
	"github.com/tracon/scopecmd/internal/sim"
)

const (
	consoleOutputWidth = 80

	clearScreen = "\033[H\033[2J"
)

// Engine contains the things needed to run a simulation from an interactive
// shell attached to an input stream and an output stream.
type Engine struct {
	scn         scenario.Scenario
	in          command.Reader
	out         *bufio.Writer
	log         *log.Logger
	interactive bool
	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. If scenarioPath is empty, the empty default
// scenario is run. logger may be nil.
func New(inputStream io.Reader, outputStream io.Writer, scenarioPath string, forceDirectInput bool, logger *log.Logger) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	scn := scenario.Default()
	if scenarioPath != "" {
		var err error
		scn, err = scenario.Load(scenarioPath)
		if err != nil {
			return nil, fmt.Errorf("load scenario: %w", err)
		}
	}

	eng := &Engine{
		scn:         scn,
		out:         bufio.NewWriter(outputStream),
		log:         logger,
		forceDirect: forceDirectInput,
	}

	eng.interactive = !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if eng.interactive {
		var err error
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	logger.Info("Engine created",
		slog.String("scenario", scn.Name),
		slog.String("airport", scn.State.Airport),
		slog.Int("aircraft", len(scn.State.Aircraft)),
		slog.Bool("interactive", eng.interactive))

	return eng, nil
}

// State gives the current simulation state.
func (eng *Engine) State() sim.State {
	return eng.scn.State
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the simulation until QUIT is entered or input ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Welcome to scopecmd\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "===================\n"
	introMsg += "\n"
	introMsg += "Scenario: " + eng.scn.Name + "\n"
	if eng.scn.State.Airport != "" {
		introMsg += fmt.Sprintf("Controlling %s with %d aircraft\n", eng.scn.State.Airport, len(eng.scn.State.Aircraft))
	}

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		cmds, err := command.Get(eng.in, eng.out, eng.log)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		if err := eng.execute(cmds); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

// execute carries out a parsed line. QUIT, HELP, and CLEAR are handled here
// since they are about the console rather than the simulation.
func (eng *Engine) execute(cmds []command.Command) error {
	first := cmds[0]
	if first.Category() == command.System {
		switch first.Name() {
		case command.Quit:
			eng.running = false
			return nil
		case command.Clear:
			if eng.interactive {
				return eng.write(clearScreen)
			}
			return nil
		case command.Help:
			var alias string
			if args := first.Args(); len(args) > 0 {
				alias, _ = args[0].(string)
			}
			text, err := sim.HelpText(alias, consoleOutputWidth)
			if err != nil {
				return eng.writeError(err)
			}
			return eng.write(text + "\n")
		}
	}

	feedback, err := eng.scn.State.Advance(cmds)
	if err != nil {
		eng.log.Info("line not carried out", slog.String("commands", fmt.Sprint(cmds)), slog.String("error", err.Error()))
		return eng.writeError(err)
	}
	eng.log.Debug("line carried out", slog.String("commands", fmt.Sprint(cmds)))

	if len(feedback) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, line := range feedback {
		sb.WriteString(rosed.Edit(line).Wrap(consoleOutputWidth).String())
		sb.WriteRune('\n')
	}
	return eng.write(sb.String())
}

func (eng *Engine) writeError(err error) error {
	consoleMessage := scoperr.ConsoleMessage(err)
	consoleMessage = rosed.Edit(consoleMessage).Wrap(consoleOutputWidth).String()
	return eng.write(consoleMessage + "\n")
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
