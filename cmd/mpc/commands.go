// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/TerminallyLazy/mpc2000xl"
	"github.com/TerminallyLazy/mpc2000xl/bank"
	"github.com/TerminallyLazy/mpc2000xl/formats"
	"github.com/TerminallyLazy/mpc2000xl/formats/wav"
	"github.com/TerminallyLazy/mpc2000xl/playback"
	"github.com/TerminallyLazy/mpc2000xl/playback/speaker"
	"github.com/TerminallyLazy/mpc2000xl/swing"
	"github.com/TerminallyLazy/mpc2000xl/timestretch"
)

func runBanks(_ context.Context, m *mpc2000xl.Machine, args []string, stdout io.Writer) error {
	fs := newFlagSet("banks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSAMPLES\tDESCRIPTION")
	for _, b := range m.AvailableBanks() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", b.ID, b.Name, len(b.Samples), b.Description)
	}
	return tw.Flush()
}

func loadWithProgress(ctx context.Context, m *mpc2000xl.Machine, bankID string, maxMB int) error {
	opts := []bank.LoadOption{bank.WithProgress(func(loaded, total int) {
		logger.Tf(ctx, "load bank=%v progress=%v/%v", bankID, loaded, total)
	})}
	if maxMB > 0 {
		opts = append(opts, bank.WithMaxMemoryMB(maxMB))
	}
	if err := m.LoadBank(ctx, bankID, opts...); err != nil {
		return errors.Wrapf(err, "load bank %v", bankID)
	}
	return nil
}

func runLoad(ctx context.Context, m *mpc2000xl.Machine, args []string, stdout io.Writer) error {
	fs := newFlagSet("load")
	maxMB := fs.Int("max-memory", 0, "memory budget in MB, 0 for the configured default")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("load needs exactly one bank id")
	}
	bankID := fs.Arg(0)

	if err := loadWithProgress(ctx, m, bankID, *maxMB); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRATE\tCHANNELS\tDURATION\tBYTES")
	for _, id := range sampleIDs(m, bankID) {
		a, _ := m.Asset(id)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%v\t%d\n",
			a.ID, a.Name, a.Buffer.SampleRate, a.Buffer.Channels(), a.Buffer.Duration(), a.Size)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "memory usage: %d bytes\n", m.CurrentMemoryUsage())
	return nil
}

func sampleIDs(m *mpc2000xl.Machine, bankID string) []string {
	var ids []string
	for _, b := range m.AvailableBanks() {
		if b.ID != bankID {
			continue
		}
		for _, s := range b.Samples {
			if _, ok := m.Asset(bank.SampleID(bankID, s.Key)); ok {
				ids = append(ids, bank.SampleID(bankID, s.Key))
			}
		}
	}
	return ids
}

func runPlay(ctx context.Context, m *mpc2000xl.Machine, args []string, _ io.Writer) error {
	fs := newFlagSet("play")
	bankID := fs.String("bank", "tr-808", "bank id")
	key := fs.String("key", "kick", "sample key within the bank")
	tune := fs.Float64("tune", 0, "pitch in semitones")
	volume := fs.Float64("volume", 100, "level 0..100")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := loadWithProgress(ctx, m, *bankID, 0); err != nil {
		return err
	}
	id := bank.SampleID(*bankID, *key)
	info, ok := m.Sample(id)
	if !ok {
		return errors.Wrapf(mpc2000xl.ErrSampleNotFound, "sample %v", id)
	}

	spk, err := speaker.Open(ctx, m.Output())
	if err != nil {
		return errors.Wrapf(err, "open speaker")
	}
	defer spk.Close()

	m.PlaySample(ctx, id, playback.WithTune(*tune), playback.WithVolume(*volume))
	logger.Tf(ctx, "play sample=%v duration=%v tune=%v volume=%v", id, info.Duration, *tune, *volume)

	// the master mix never ends, so wait for the voice
	done, cancel := context.WithTimeout(ctx, voiceLength(info.Duration, *tune)+playTail)
	defer cancel()
	<-done.Done()
	return nil
}

func runStretch(ctx context.Context, m *mpc2000xl.Machine, args []string, stdout io.Writer) error {
	fs := newFlagSet("stretch")
	in := fs.String("in", "", "input audio file (wav, aiff, mp3, ogg)")
	out := fs.String("out", "", "output WAV file")
	ratio := fs.Float64("ratio", 100, "speed in percent, 50..200")
	quality := fs.String("quality", "", "standard|enhanced|premium or A|B|C, empty for the configured default")
	algo := fs.Int("algo", 0, "algorithm index within the quality tier")
	rate := fs.Int("rate", 0, "output sample rate, 0 keeps the input rate")
	mono := fs.Bool("mono", false, "mix the output down to mono")
	list := fs.Bool("list", false, "list the algorithms and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "QUALITY\tINDEX\tNAME\tWINDOW\tHOP")
		for _, a := range m.Algorithms() {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\n", a.Quality.Letter(), a.TierIndex, a.Name, a.Params.Window, a.Params.Hop)
		}
		return tw.Flush()
	}
	if *in == "" || *out == "" {
		return errors.New("stretch needs -in and -out")
	}

	q := m.StretchQuality()
	if *quality != "" {
		var err error
		if q, err = timestretch.ParseQuality(*quality); err != nil {
			return errors.Wrapf(err, "parse quality")
		}
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return errors.Wrapf(err, "read %v", *in)
	}
	buf, err := formats.Decode(formats.NewRegistry(), raw)
	if err != nil {
		return errors.Wrapf(err, "decode %v", *in)
	}

	stretched, err := m.ProcessAudio(buf, timestretch.Request{Quality: q, Ratio: *ratio, AlgorithmIndex: *algo})
	if err != nil {
		return errors.Wrapf(err, "stretch")
	}
	if *rate > 0 || *mono {
		target := *rate
		if target <= 0 {
			target = stretched.SampleRate
		}
		if stretched, err = mpc2000xl.Bounce(stretched, target, *mono); err != nil {
			return errors.Wrapf(err, "bounce")
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrapf(err, "create %v", *out)
	}
	defer f.Close()

	if err := wav.Encode(f, stretched); err != nil {
		return errors.Wrapf(err, "write %v", *out)
	}

	logger.Tf(ctx, "stretch in=%v out=%v quality=%v algo=%v ratio=%v duration=%v->%v",
		*in, *out, q, *algo, *ratio, buf.Duration(), stretched.Duration())
	fmt.Fprintf(stdout, "wrote %s (%v)\n", *out, stretched.Duration())
	return nil
}

func runSwing(ctx context.Context, m *mpc2000xl.Machine, args []string, stdout io.Writer) error {
	fs := newFlagSet("swing")
	percent := fs.Float64("percent", 62, "swing percentage, 50..75")
	resolution := fs.Int("resolution", 0, "swing grid cells per minute, 0 for sixteenths at -bpm")
	bpm := fs.Float64("bpm", 90, "tempo")
	bars := fs.Int("bars", 1, "pattern length in bars of 4/4")
	out := fs.String("out", "", "output .mid file, empty prints the event times")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *resolution <= 0 {
		*resolution = int(math.Round(*bpm * 4))
	}
	settings := m.SetSwing(swing.Settings{Enabled: true, Percentage: *percent, Resolution: *resolution})
	events := m.SwingPattern(hatPattern(*bpm, *bars))
	logger.Tf(ctx, "swing percent=%v resolution=%v events=%v", settings.Percentage, settings.Resolution, len(events))

	if *out == "" {
		var sb strings.Builder
		for _, e := range events {
			if e.Type == swing.NoteOn {
				fmt.Fprintf(&sb, "%8.1f ms  note %d\n", e.Time, e.Note)
			}
		}
		_, err := io.WriteString(stdout, sb.String())
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrapf(err, "create %v", *out)
	}
	defer f.Close()

	if err := swing.WriteSMF(f, events, *bpm); err != nil {
		return errors.Wrapf(err, "write %v", *out)
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return nil
}
