/*
Scopei starts an interactive scope console session.

It loads a scenario file and then reads controller commands from stdin,
printing aircraft readbacks and other feedback to stdout until the "QUIT"
command is entered or input ends.

Usage:

	scopei [flags]

The flags are:

	-v, --version
		Give the current version of scopecmd and then exit.

	-s, --scenario FILE
		Use the provided SCOPE scenario or manifest file. If not given, an empty
		scenario with no airport and no traffic is started.

	-d, --direct
		Force reading directly from the console as opposed to using readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

	--log-level LEVEL
		Log at LEVEL or above. Must be one of debug, info, warn, or error.
		Defaults to info.

	--log-dir DIR
		Write the log file to DIR. Defaults to a "scopecmd" directory in the
		user config directory.

Once a session has started, each line is parsed as either a system command,
such as "PAUSE" or "TIMEWARP 5", or a callsign followed by one or more aircraft
commands, such as "AA777 FH 270 C 120". For the full list, type "HELP" once in
a session.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tracon/scopecmd"
	"github.com/tracon/scopecmd/internal/log"
	"github.com/tracon/scopecmd/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode int = ExitSuccess

	flagVersion  = pflag.BoolP("version", "v", false, "Give the version info and then exit")
	flagScenario = pflag.StringP("scenario", "s", "", "The SCOPE scenario or manifest file to load")
	flagDirect   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through readline where possible")
	flagLogLevel = pflag.String("log-level", "info", "Log at this level or above; one of debug, info, warn, or error")
	flagLogDir   = pflag.String("log-dir", "", "Directory to write the log file to")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	logger, err := log.New(false, *flagLogLevel, *flagLogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	eng, initErr := scopecmd.New(os.Stdin, os.Stdout, *flagScenario, *flagDirect, logger)
	if initErr != nil {
		logger.Error("could not start engine", "error", initErr)
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(); err != nil {
		logger.Error("session ended with error", "error", err)
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}
