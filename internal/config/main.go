package config

import (
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/hitsound/internal/hits"
)

const (
	Version = "0.3.0"

	HitsCommand   = "hits"
	MixCommand    = "mix"
	RenderCommand = "render"
	WatchCommand  = "watch"
)

type Options struct {
	Command string

	Chart    string // Input chart for hits, render and watch
	HitsFile string // Input hit file for mix

	Out  string // Hit file to write
	Wav  string // Mixed track to write
	MIDI string // Optional drum track to write

	Strict      bool
	ApplyOffset bool
	Force       bool
	Radius      int64

	Cache string // sqlite hit store, empty to disable

	LogLevel string
	LogFile  string

	SampleRate int
	Samples    map[hits.Sound]string
}

// LoadEnv reads KEY=value pairs from file into the environment without
// overriding what is already set. A missing file is not an error.
func LoadEnv(file string) error {
	if err := godotenv.Load(file); nil != err && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "unable to load %s", file)
	}
	return nil
}

// Parse reads the command line. Every flag may also come from a
// HITSOUND_ environment variable.
func Parse(args []string) (*Options, error) {
	o := &Options{Samples: map[hits.Sound]string{}}
	var tapSample, arcTapSample, arcSample string

	app := kingpin.New("hitsound", "Turn an aff chart into hitsound cues and a panned hitsound track.")
	app.Version(Version)
	app.HelpFlag.Short('h')

	app.Flag("strict", "Abort on the first malformed note instead of skipping it").Envar("HITSOUND_STRICT").BoolVar(&o.Strict)
	app.Flag("apply-offset", "Shift hit times by the chart AudioOffset").Envar("HITSOUND_APPLY_OFFSET").BoolVar(&o.ApplyOffset)
	app.Flag("force", "Overwrite outputs without asking").Short('f').Envar("HITSOUND_FORCE").BoolVar(&o.Force)
	app.Flag("radius", "Coincidence radius in ticks and hundredths").Default("5").Envar("HITSOUND_RADIUS").Int64Var(&o.Radius)
	app.Flag("cache", "Hit store database, empty to disable").Default("./hits.db").Envar("HITSOUND_CACHE").StringVar(&o.Cache)
	app.Flag("midi", "Also write the hits as a midi drum track").Envar("HITSOUND_MIDI").StringVar(&o.MIDI)
	app.Flag("log-level", "Log level").Default("info").Envar("HITSOUND_LOG_LEVEL").EnumVar(&o.LogLevel, "debug", "info", "warn", "error")
	app.Flag("log-file", "Also log to this rotated file").Envar("HITSOUND_LOG_FILE").StringVar(&o.LogFile)
	app.Flag("tap-sample", "Sample for tap-sound").Default("hit1.wav").Envar("HITSOUND_TAP_SAMPLE").StringVar(&tapSample)
	app.Flag("arctap-sample", "Sample for arctap-sound").Default("hit2.wav").Envar("HITSOUND_ARCTAP_SAMPLE").StringVar(&arcTapSample)
	app.Flag("arc-sample", "Sample for arc-sound").Default("hit3.wav").Envar("HITSOUND_ARC_SAMPLE").StringVar(&arcSample)
	app.Flag("sample-rate", "Output sample rate").Default("44100").Envar("HITSOUND_SAMPLE_RATE").IntVar(&o.SampleRate)

	hitsCmd := app.Command(HitsCommand, "Write the hit list of a chart").Default()
	hitsCmd.Arg("chart", "Chart file").Required().ExistingFileVar(&o.Chart)
	hitsCmd.Flag("out", "Hit file").Short('o').Default("hits.txt").StringVar(&o.Out)

	mixCmd := app.Command(MixCommand, "Mix a hit list into a wav")
	mixCmd.Arg("hits", "Hit file").Required().ExistingFileVar(&o.HitsFile)
	mixCmd.Flag("wav", "Output track").Short('w').Default("rhythm.wav").StringVar(&o.Wav)

	renderCmd := app.Command(RenderCommand, "Write the hit list and mix it")
	renderCmd.Arg("chart", "Chart file").Required().ExistingFileVar(&o.Chart)
	renderCmd.Flag("out", "Hit file").Short('o').Default("hits.txt").StringVar(&o.Out)
	renderCmd.Flag("wav", "Output track").Short('w').Default("rhythm.wav").StringVar(&o.Wav)

	watchCmd := app.Command(WatchCommand, "Rewrite the hit list whenever the chart changes")
	watchCmd.Arg("chart", "Chart file").Required().ExistingFileVar(&o.Chart)
	watchCmd.Flag("out", "Hit file").Short('o').Default("hits.txt").StringVar(&o.Out)

	command, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	o.Command = command

	if o.SampleRate <= 0 {
		return nil, errors.Errorf("sample rate must be positive, got %d", o.SampleRate)
	}
	if o.Radius < 1 {
		return nil, errors.Errorf("radius must be at least 1, got %d", o.Radius)
	}
	o.Samples[hits.TapSound] = tapSample
	o.Samples[hits.ArcTapSound] = arcTapSample
	o.Samples[hits.ArcSound] = arcSample
	return o, nil
}
