// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/akamensky/argparse"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/hellovm/pebble"
	"github.com/ava-labs/hellovm/utils/logfactory"
	"github.com/ava-labs/hellovm/vm"
)

const simulatorFolder = ".hello-sim"

type Cmd interface {
	Happened() bool
	Run(ctx context.Context, s *Simulator) error
}

type Simulator struct {
	in  io.Reader
	out io.Writer

	logLevel *string
	dataDir  *string
	memory   *bool
	cleanup  *bool

	log        logging.Logger
	logFactory *logfactory.Factory
	closeDB    func() error
	vm         *vm.VM
}

func NewSimulator(in io.Reader, out io.Writer) *Simulator {
	return &Simulator{in: in, out: out}
}

// Execute parses [args] (including the program name) and runs the selected
// command. Global flags are accepted after the command name, for example
// "hello-sim run --plan - --memory".
func (s *Simulator) Execute(ctx context.Context, args []string) error {
	parser := argparse.NewParser("hello-sim", "hello program simulator")
	s.logLevel = parser.String("", "log-level", &argparse.Options{
		Help:    "log level",
		Default: "info",
	})
	s.dataDir = parser.String("", "data-dir", &argparse.Options{
		Help:    "simulator directory (defaults to ~/" + simulatorFolder + ")",
		Default: "",
	})
	s.memory = parser.Flag("", "memory", &argparse.Options{
		Help: "keep state in memory only",
	})
	s.cleanup = parser.Flag("", "cleanup", &argparse.Options{
		Help: "remove simulator directory on exit",
	})
	cmds := newCommands(parser, true)
	if err := parser.Parse(args); err != nil {
		return errors.New(parser.Usage(err))
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.manageCleanup()

	return runHappened(ctx, s, cmds)
}

// newCommands registers every simulator command on [parser]. The interpreter
// cannot be nested so it is only offered at the top level.
func newCommands(parser *argparse.Parser, interpreter bool) []Cmd {
	cmds := []Cmd{
		newHelloCmd(parser),
		newGoodbyeCmd(parser),
		newIncrementCmd(parser),
		newStateCmd(parser),
		newRunCmd(parser),
	}
	if interpreter {
		cmds = append(cmds, newInterpreterCmd(parser))
	}
	return cmds
}

func runHappened(ctx context.Context, s *Simulator, cmds []Cmd) error {
	for _, c := range cmds {
		if c.Happened() {
			return c.Run(ctx, s)
		}
	}
	return ErrNoCommand
}

// Init opens the simulator database and logger.
func (s *Simulator) Init() error {
	dir := *s.dataDir
	if len(dir) == 0 {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = path.Join(homeDir, simulatorFolder)
	}
	*s.dataDir = dir

	loggingConfig := logging.Config{}
	level, err := logging.ToLevel(*s.logLevel)
	if err != nil {
		return err
	}
	loggingConfig.LogLevel = level
	loggingConfig.DisplayLevel = logging.Off
	loggingConfig.Directory = path.Join(dir, "logs")
	loggingConfig.LogFormat = logging.JSON
	loggingConfig.DisableWriterDisplaying = true

	s.logFactory = logfactory.New(loggingConfig)
	s.log, err = s.logFactory.Make("simulator")
	if err != nil {
		s.logFactory.Close()
		return err
	}

	var db vm.Database
	if *s.memory {
		mdb := memdb.New()
		db, s.closeDB = mdb, mdb.Close
	} else {
		pdb, err := pebble.New(path.Join(dir, "db"), pebble.NewDefaultConfig(), prometheus.NewRegistry())
		if err != nil {
			s.logFactory.Close()
			return err
		}
		db, s.closeDB = pdb, pdb.Close
	}

	s.vm, err = vm.New(s.log, trace.Noop, db, prometheus.NewRegistry())
	if err != nil {
		_ = s.closeDB()
		s.logFactory.Close()
		return err
	}
	s.log.Info("simulator initialized",
		zap.String("dir", dir),
		zap.Bool("memory", *s.memory),
	)
	return nil
}

func (s *Simulator) manageCleanup() {
	if err := s.closeDB(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close simulator db: %s\n", err)
	}
	s.logFactory.Close()
	if !*s.cleanup {
		return
	}
	if err := os.RemoveAll(*s.dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to remove simulator directory: %s\n", err)
	}
}
