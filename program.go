package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"git.lost.host/meutraa/hitsound/internal/config"
	"git.lost.host/meutraa/hitsound/internal/export"
	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/hits"
	"git.lost.host/meutraa/hitsound/internal/logger"
	"git.lost.host/meutraa/hitsound/internal/mixer"
	"git.lost.host/meutraa/hitsound/internal/parser"
	"git.lost.host/meutraa/hitsound/internal/store"
	"git.lost.host/meutraa/hitsound/internal/theme"
)

// Editors tend to save in several writes, wait for them to settle
const watchSettle = 150 * time.Millisecond

var ErrDeclined = errors.New("not overwriting existing file")

type Program struct {
	Options *config.Options
	Parser  parser.Parser
	Store   store.Store
	Theme   theme.Theme

	Stdout      io.Writer
	interactive bool
	run         string
}

// Result is what one pass over a chart produced
type Result struct {
	Chart  *game.Chart
	Hits   []hits.Hit
	Cached bool
	Runs   int // Stored runs for this chart and settings
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{Strict: p.Options.Strict}
	colour := term.IsTerminal(int(os.Stdout.Fd()))
	p.Theme = &theme.DefaultTheme{Color: colour}
	p.interactive = colour && term.IsTerminal(int(os.Stdin.Fd()))
	if nil == p.Stdout {
		p.Stdout = os.Stdout
	}

	p.run = uuid.NewString()
	logger.With(logger.String("run", p.run))

	if p.Options.Cache != "" {
		s := &store.DefaultStore{}
		if err := s.Init(p.Options.Cache); nil != err {
			return err
		}
		p.Store = s
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.Store {
		p.Store.Deinit()
	}
}

func (p *Program) offset(chart *game.Chart) game.Tick {
	if p.Options.ApplyOffset {
		return chart.AudioOffset
	}
	return 0
}

// Process parses the chart and extracts its hits, or reuses the hits
// stored for identical chart text and settings.
func (p *Program) Process(file string) (*Result, error) {
	start := time.Now()
	chart, err := p.Parser.ParseFile(file)
	if nil != err {
		return nil, err
	}
	logger.Debug("parsed chart",
		logger.String("chart", file),
		logger.Int("notes", len(chart.Notes)),
		logger.Int("diagnostics", len(chart.Diagnostics)),
	)

	opts := hits.Options{Radius: p.Options.Radius, Offset: p.offset(chart)}
	sum := store.Sum(chart.Sum, opts.Offset, opts.Radius)
	if nil != p.Store {
		if cached, ok := p.Store.Load(sum); ok {
			logger.Info("reusing stored hits", logger.String("chart", file), logger.Int("hits", len(cached)))
			return &Result{Chart: chart, Hits: cached, Cached: true, Runs: p.runs(sum)}, nil
		}
	}

	out, err := hits.FromChart(chart, opts)
	if nil != err {
		return nil, err
	}
	if nil != p.Store {
		if err := p.Store.Save(sum, p.run, out); nil != err {
			logger.Warn("unable to store hits", logger.Err(err))
		}
	}
	logger.Info("extracted hits",
		logger.String("chart", file),
		logger.Int("hits", len(out)),
		logger.Duration("took", time.Since(start)),
	)
	return &Result{Chart: chart, Hits: out, Runs: p.runs(sum)}, nil
}

func (p *Program) runs(sum string) int {
	if nil == p.Store {
		return 0
	}
	history, err := p.Store.History(sum)
	if nil != err {
		logger.Warn("unable to read hit history", logger.Err(err))
		return 0
	}
	return len(history)
}

// confirm asks before replacing an existing file. Without a terminal
// there is nobody to ask, so the file is replaced.
func (p *Program) confirm(file string) error {
	if p.Options.Force {
		return nil
	}
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return nil
	}
	if !p.interactive {
		logger.Warn("overwriting", logger.String("file", file))
		return nil
	}
	fmt.Fprintf(p.Stdout, "%s exists, overwrite? [y/N] ", file)
	ch, _, err := keyboard.GetSingleKey()
	fmt.Fprintln(p.Stdout)
	if nil != err {
		return errors.Wrap(err, "unable to read answer")
	}
	if ch != 'y' && ch != 'Y' {
		return errors.Wrap(ErrDeclined, file)
	}
	return nil
}

func (p *Program) write(res *Result) error {
	if err := p.confirm(p.Options.Out); nil != err {
		return err
	}
	if err := hits.WriteFile(p.Options.Out, res.Hits); nil != err {
		return err
	}
	if p.Options.MIDI != "" {
		if err := p.confirm(p.Options.MIDI); nil != err {
			return err
		}
		if err := export.WriteMIDIFile(p.Options.MIDI, res.Hits); nil != err {
			return err
		}
	}
	fmt.Fprint(p.Stdout, p.Theme.Summary(res.Chart, hits.Count(res.Hits), res.Cached, res.Runs))
	return nil
}

func (p *Program) mix(in []hits.Hit) error {
	if err := p.confirm(p.Options.Wav); nil != err {
		return err
	}
	start := time.Now()
	rate := beep.SampleRate(p.Options.SampleRate)
	if err := mixer.MixFile(p.Options.Wav, in, p.Options.Samples, rate); nil != err {
		return err
	}
	logger.Info("mixed track",
		logger.String("wav", p.Options.Wav),
		logger.Int("hits", len(in)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

func (p *Program) Hits() error {
	res, err := p.Process(p.Options.Chart)
	if nil != err {
		return err
	}
	return p.write(res)
}

func (p *Program) Mix() error {
	in, err := hits.ReadFile(p.Options.HitsFile)
	if nil != err {
		return err
	}
	return p.mix(hits.Normalize(in))
}

func (p *Program) Render() error {
	res, err := p.Process(p.Options.Chart)
	if nil != err {
		return err
	}
	if err := p.write(res); nil != err {
		return err
	}
	return p.mix(res.Hits)
}

// Watch rewrites the hit file every time the chart is saved, until ctx
// is cancelled. Runs never overlap.
func (p *Program) Watch(ctx context.Context) error {
	if err := p.Hits(); nil != err {
		return err
	}
	// Only ask once, later runs replace our own output
	p.Options.Force = true

	w, err := fsnotify.NewWatcher()
	if nil != err {
		return errors.Wrap(err, "unable to watch chart")
	}
	defer w.Close()

	chart, err := filepath.Abs(p.Options.Chart)
	if nil != err {
		return err
	}
	// Watch the directory, editors often replace the file on save
	if err := w.Add(filepath.Dir(chart)); nil != err {
		return errors.Wrap(err, "unable to watch chart directory")
	}
	logger.Info("watching", logger.String("chart", chart))

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != chart || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settle = time.After(watchSettle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logger.Err(err))
		case <-settle:
			settle = nil
			if err := p.Hits(); nil != err {
				// Keep watching, the next save may fix it
				logger.Error("unable to rewrite hits", logger.Err(err))
			}
		}
	}
}
