/*
Scopeserver starts a scopecmd server and begins listening for new connections.

Usage:

	scopeserver [flags]
	scopeserver [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them
using REST protocol. Clients create a sim session and then send console lines
to it. By default, it will listen on localhost:8080. This can be changed with
the --listen/-l flag (or config via config file or environment var). The flag
argument must be either a full address with port, such as "192.168.0.2:6001",
or just the port preceeded by a colon, such as ":6001".

Settings are taken from, in increasing order of precedence: the config file
given with --config, environment variables, and flags.

If a JWT token secret is not given, one will be automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as soon
as the server shuts down. This is suitable for testing, but must be given via
config file, flag, or environment variable if running in production.

The flags are:

	-v, --version
		Give the current version of the server and then exit.

	-c, --config FILE
		Read settings from the given TOML file. It may set listen_address,
		token_secret, database, and unauth_delay_ms.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		SCOPECMD_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable SCOPECMD_TOKEN_SECRET. If no secret is specified, a random
		secret will be automatically generated.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable SCOPECMD_DATABASE. If no DB driver
		is specified, an in-memory database is automatically selected.

	--log-level LEVEL
		Log at LEVEL or above. Must be one of debug, info, warn, or error.

	--log-dir DIR
		Write log files to DIR. Defaults to "scopecmd-logs" in the working
		directory.
*/
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/tracon/scopecmd/internal/log"
	"github.com/tracon/scopecmd/internal/version"
	"github.com/tracon/scopecmd/server"
)

const (
	EnvListen = "SCOPECMD_LISTEN_ADDRESS"
	EnvSecret = "SCOPECMD_TOKEN_SECRET"
	EnvDB     = "SCOPECMD_DATABASE"
)

const (
	ExitSuccess = iota
	ExitServeError
	ExitInitError
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of the server and then exit.")
	flagConfig   = pflag.StringP("config", "c", "", "Read settings from the given TOML file.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB       = pflag.String("db", "", "Use the given DB connection string.")
	flagLogLevel = pflag.String("log-level", "info", "Log at this level or above; one of debug, info, warn, or error.")
	flagLogDir   = pflag.String("log-dir", "", "Directory to write log files to.")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (scopecmd v%s)\n", version.ServerCurrent, version.Current)
		return ExitSuccess
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		return ExitInitError
	}

	logger, err := log.New(true, *flagLogLevel, *flagLogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		return ExitInitError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		return ExitInitError
	}

	if cfg.TokenSecret == nil {
		// use all 64 possible bytes if doing a generated secret
		cfg.TokenSecret = make([]byte, server.MaxSecretSize)
		if _, err := rand.Read(cfg.TokenSecret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			return ExitInitError
		}
		logger.Warn("using generated token secret; all tokens issued will become invalid at shutdown")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("could not start server", "error", err)
		fmt.Fprintf(os.Stderr, "Could not start server: %s\n", err.Error())
		return ExitInitError
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filled := cfg.FillDefaults()
	logger.Info("starting scopecmd server", "version", version.ServerCurrent, "db", filled.DB.String())
	fmt.Printf("Listening on %s...\n", filled.ListenAddress)
	if err := srv.ServeUntil(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Server stopped: %s\n", err.Error())
		return ExitServeError
	}

	return ExitSuccess
}

// loadConfig layers the config file, then environment variables, then flags.
func loadConfig() (server.Config, error) {
	var cfg server.Config

	if *flagConfig != "" {
		var err error
		cfg, err = server.LoadConfig(*flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
	}

	if listen := setting(EnvListen, "listen", *flagListen); listen != "" {
		cfg.ListenAddress = listen
	}

	if dbConnStr := setting(EnvDB, "db", *flagDB); dbConnStr != "" {
		db, err := server.ParseDBConnString(dbConnStr)
		if err != nil {
			return cfg, err
		}
		cfg.DB = db
	}

	if tokSecStr := setting(EnvSecret, "secret", *flagSecret); tokSecStr != "" {
		tokSecret := []byte(tokSecStr)

		for len(tokSecret) < server.MinSecretSize {
			tokSecret = append(tokSecret, tokSecret...)
		}

		if len(tokSecret) > server.MaxSecretSize {
			// keys would be chopped at 64, so rather than the user thinking
			// they have more security by giving a longer key, refuse to start.
			return cfg, fmt.Errorf("token secret is %d bytes, but it must be <= %d bytes", len(tokSecret), server.MaxSecretSize)
		}
		cfg.TokenSecret = tokSecret
	}

	return cfg, nil
}

// setting gives the flag value if the flag was given, otherwise the value of
// the environment variable.
func setting(env, flagName, flagVal string) string {
	if pflag.Lookup(flagName).Changed {
		return flagVal
	}
	return os.Getenv(env)
}
