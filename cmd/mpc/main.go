// SPDX-License-Identifier: EPL-2.0

// Command mpc drives the sample engine from a terminal.
//
//	mpc banks
//	mpc load tr-808
//	mpc play -bank tr-808 -key kick -tune -3
//	mpc stretch -in loop.wav -out slow.wav -ratio 75 -quality premium -algo 4
//	mpc swing -percent 62 -out groove.mid
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/TerminallyLazy/mpc2000xl"
	"github.com/TerminallyLazy/mpc2000xl/internal/config"
)

const usage = `usage: mpc <command> [flags]

commands:
  banks     list the sound banks
  load      load a bank and report its samples
  play      load a bank and audition one sample
  stretch   time stretch an audio file into a WAV file
  swing     write a swung drum pattern as a MIDI file
`

type command func(ctx context.Context, m *mpc2000xl.Machine, args []string, stdout io.Writer) error

var commands = map[string]command{
	"banks":   runBanks,
	"load":    runLoad,
	"play":    runPlay,
	"stretch": runStretch,
	"swing":   runSwing,
}

func main() {
	ctx := logger.WithContext(context.Background())

	if err := doMain(ctx, os.Args[1:]); err != nil {
		logger.Ef(ctx, "run err %+v", err)
		os.Exit(1)
	}
}

func doMain(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprint(os.Stderr, usage)
		return errors.Errorf("unknown command %v", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrapf(err, "load config")
	}
	logger.Tf(ctx, "load config catalog=%v base=%v memory=%vMB rate=%v quality=%v",
		cfg.Catalog, cfg.SampleBaseURL, cfg.MaxMemoryMB, cfg.SampleRate, cfg.StretchQuality)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for s := range sc {
			logger.Tf(ctx, "Got signal %v", s)
			cancel()
		}
	}()

	m, err := mpc2000xl.New(cfg)
	if err != nil {
		return errors.Wrapf(err, "create machine")
	}
	defer m.Close()

	return cmd(ctx, m, args[1:], os.Stdout)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
