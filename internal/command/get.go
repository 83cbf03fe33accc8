package command

import (
	"bufio"
	"fmt"
	"log/slog"

	"github.com/tracon/scopecmd/internal/log"
	"github.com/tracon/scopecmd/internal/scoperr"
)

// Reader is a type that can be used for getting command input.
type Reader interface {
	// ReadCommand reads a single line of user input. It will block until one
	// is ready. If there is an error or input is at its end (EOF), the
	// returned string will be empty, otherwise it will always be non-empty.
	//
	// When error is io.EOF, string will always be empty. If EOF was
	// encountered on a call but some input was received, the input will be
	// returned and error will be nil, and the next call to ReadCommand will
	// return "", io.EOF.
	ReadCommand() (string, error)

	// AllowBlank sets whether ReadCommand may return an empty line.
	AllowBlank(allow bool)

	// Close performs any operations required to clean the resources created
	// by the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}

// Get obtains the commands of a single line of input by reading from the
// provided Reader. Lines that cannot be parsed have their console message
// written to ostream and are logged, and reading continues until a line
// parses.
//
// Note that this function does not check whether the commands can be carried
// out, only that they can be parsed.
func Get(cmdStream Reader, ostream *bufio.Writer, logger *log.Logger) ([]Command, error) {
	for {
		input, err := cmdStream.ReadCommand()
		if err != nil {
			return nil, fmt.Errorf("could not get input: %w", err)
		}

		cmds, err := Parse(input)
		if err == nil {
			logger.Debug("parsed line", slog.String("input", input), slog.Int("commands", len(cmds)))
			return cmds, nil
		}

		logger.Info("rejected line", slog.String("input", input), slog.String("error", err.Error()))

		errMsg := fmt.Sprintf("%s\nTry HELP for valid commands\n", scoperr.ConsoleMessage(err))
		if _, err := ostream.WriteString(errMsg); err != nil {
			return nil, fmt.Errorf("could not write output: %w", err)
		}
		if err := ostream.Flush(); err != nil {
			return nil, fmt.Errorf("could not flush output: %w", err)
		}
	}
}
