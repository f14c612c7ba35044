// Package main provides the skirmish command, which resolves dice pools,
// attacks, and defenses from the YAML rule catalog and prints the full
// breakdown as YAML.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/ruleset"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

const usage = `usage: skirmish [-config path] <command> [flags]

commands:
  roll     resolve a dice pool under a reduction mode and optional reroll
  attack   resolve an attack from the catalog
  defend   resolve a defense from the catalog
`

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		log.Fatalf("skirmish: %v", err)
	}
}

// env holds everything a command needs after startup.
type env struct {
	cfg     config.Config
	logger  *zap.Logger
	src     dice.Source
	catalog *ruleset.Catalog
	out     io.Writer
}

// run parses global flags, builds the environment, and dispatches to a command.
//
// Postcondition: On success the command's YAML report has been written to out.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("skirmish", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file (defaults and SKIRMISH_ env only when empty)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	e := &env{cfg: cfg, logger: logger, src: newSource(cfg.Engine, logger), out: out}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "roll":
		return e.roll(rest)
	case "attack", "defend":
		catalog, err := ruleset.LoadCatalog(cfg.Engine.ContentDir)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
		logger.Debug("catalog loaded",
			zap.String("content_dir", cfg.Engine.ContentDir),
			zap.Any("counts", catalog.Counts()),
		)
		e.catalog = catalog
		if cmd == "attack" {
			return e.attack(rest)
		}
		return e.defend(rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// newSource builds the dice source selected by cfg.
func newSource(cfg config.EngineConfig, logger *zap.Logger) dice.Source {
	switch cfg.Source {
	case config.SourceSeeded:
		logger.Info("using seeded dice source", zap.Int64("seed", cfg.Seed))
		return dice.NewSeededSource(cfg.Seed)
	default:
		return dice.NewCryptoSource()
	}
}
