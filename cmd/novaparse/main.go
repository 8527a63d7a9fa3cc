package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/tuannm99/novaparse/internal"
	"github.com/tuannm99/novaparse/internal/repl"
	"github.com/tuannm99/novaparse/internal/sql/parser"
	"github.com/tuannm99/novaparse/sqlclient"
)

// remoteBackend parses through a novaparse server.
type remoteBackend struct {
	cli *sqlclient.Client
}

func (b remoteBackend) Parse(ctx context.Context, sql string) (*repl.Result, error) {
	resp, err := b.cli.Parse(ctx, sql)
	if err != nil {
		return nil, err
	}
	return &repl.Result{Tree: resp.Tree, SQL: resp.SQL, JSON: resp.Statement}, nil
}

func main() {
	fs := pflag.NewFlagSet("novaparse", pflag.ExitOnError)
	var (
		cfgPath     = fs.String("config", "", "YAML config file")
		oneShotSQL  = fs.StringP("command", "c", "", "parse one statement and exit (must end with ';')")
		scriptPath  = fs.StringP("file", "f", "", "parse every statement in a file and exit")
		remote      = fs.String("remote", "", "parse on a novaparse server at this address instead of locally")
		timeout     = fs.Duration("timeout", 3*time.Second, "dial and request timeout for --remote")
		writeConfig = fs.Bool("write-config", false, "print the effective config as YAML and exit")
	)
	fs.String("repl.format", "tree", "output format: tree, sql or json")
	fs.String("repl.history", repl.DefaultHistoryPath(), "history file path (empty disables)")
	fs.Int("repl.history_max", 2000, "max history lines loaded into memory")
	fs.String("log.level", "info", "log level: debug, info, warn, error")
	_ = fs.Parse(os.Args[1:])

	cfg, err := internal.LoadConfig(*cfgPath, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	internal.SetupLogger(os.Stderr, cfg)

	if *writeConfig {
		if err := internal.WriteConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	format, err := repl.ParseFormat(cfg.Repl.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	var backend repl.Backend = repl.LocalBackend{}
	if *remote != "" {
		cli, err := sqlclient.DialContext(ctx, *remote, *timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dial: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = cli.Close() }()
		cli.SetRWTimeout(*timeout)
		backend = remoteBackend{cli: cli}
	}

	switch {
	case strings.TrimSpace(*oneShotSQL) != "":
		os.Exit(runOnce(ctx, backend, format, *oneShotSQL))
	case *scriptPath != "":
		os.Exit(runScript(ctx, format, *scriptPath))
	}

	if err := runInteractive(ctx, cfg, backend, format); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println("Goodbye!")
}

func runOnce(ctx context.Context, backend repl.Backend, format repl.Format, sql string) int {
	res, err := backend.Parse(ctx, sql)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := repl.WriteResult(os.Stdout, format, res); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

// runScript splits the file into statements and parses them concurrently.
func runScript(ctx context.Context, format repl.Format, path string) int {
	data, err := afero.ReadFile(afero.NewOsFs(), path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read script: %v\n", err)
		return 1
	}

	results := parser.ParseEach(ctx, repl.SplitStatements(string(data)))
	for i, r := range results {
		if r.Err != nil {
			fmt.Printf("-- statement %d: error: %v\n", i+1, r.Err)
			continue
		}
		res, err := repl.NewResult(r.Stmt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Printf("-- statement %d\n", i+1)
		if err := repl.WriteResult(os.Stdout, format, res); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	}

	if err := parser.Errors(results); err != nil {
		return 1
	}
	return 0
}

func runInteractive(ctx context.Context, cfg *internal.NovaParseConfig, backend repl.Backend, format repl.Format) error {
	h := repl.NewHistory(afero.NewOsFs(), cfg.Repl.History)
	if err := h.Load(cfg.Repl.HistoryMax); err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
	}

	rl, err := repl.NewReadline(cfg.Repl.Prompt)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// preload history into readline (so ↑ works immediately)
	for _, line := range h.Lines() {
		_ = rl.SaveHistory(line)
	}

	fmt.Println("novaparse: enter SQL statements ending with ';' (\\help for help, empty line to quit)")

	s := &repl.Session{
		In:             rl,
		Out:            os.Stdout,
		Backend:        backend,
		History:        h,
		Format:         format,
		Prompt:         cfg.Repl.Prompt,
		ContinuePrompt: cfg.Repl.ContinuePrompt,
		OnSubmit:       func(stmt string) { _ = rl.SaveHistory(stmt) },
	}
	err = s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
