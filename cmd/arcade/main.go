package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/arcade/audio"
	"github.com/lixenwraith/arcade/config"
	"github.com/lixenwraith/arcade/engine"
	"github.com/lixenwraith/arcade/terminal"
)

type options struct {
	configPath string
	debug      bool
	frameMS    int
	noAudio    bool
	screen     string
	seed       uint64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "arcade",
		Short:        "Rock-shooting demo running the arcade engine in a terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.BoolVar(&opts.debug, "debug", false, "write a debug log to "+logDir+"/"+logFileName)
	f.IntVar(&opts.frameMS, "frame-ms", 0, "frame period in milliseconds (overrides the configuration)")
	f.BoolVar(&opts.noAudio, "no-audio", false, "disable sound")
	f.StringVar(&opts.screen, "screen", "", "logical canvas WIDTHxHEIGHT (default: terminal size)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	return cmd
}

// loadConfig applies flags on top of the file and environment
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("frame-ms") {
		cfg.FramePeriod = time.Duration(opts.frameMS) * time.Millisecond
	}
	if opts.noAudio {
		cfg.Audio.Enabled = false
	}
	if opts.screen != "" {
		w, h, err := config.ParseSize(opts.screen)
		if err != nil {
			return config.Config{}, fmt.Errorf("--screen: %w", err)
		}
		cfg.Screen.Width, cfg.Screen.Height = w, h
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cfg config.Config, opts options) error {
	log, logFile := setupLogging(opts.debug)
	if logFile != nil {
		defer logFile.Close()
	}
	defer func() { _ = log.Sync() }()

	term, err := terminal.New(terminal.Config{
		Title:        cfg.Title,
		ReleaseDelay: cfg.Terminal.ReleaseDelay,
	}, nil, log.Named("terminal"))
	if err != nil {
		return err
	}

	// Panic recovery: restore the terminal before printing so the trace stays readable
	defer func() {
		if r := recover(); r != nil {
			_ = term.Close()
			log.Error("panic", zap.Any("value", r), zap.Stack("stack"))
			fmt.Fprintf(os.Stderr, "\nARCADE CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	defer forwardSignals(sig, term.RequestQuit)()

	eng, err := engine.New(cfg, term, log.Named("engine"))
	if err != nil {
		_ = term.Close()
		return err
	}
	defer eng.Close()

	mixer := audio.NewMixer(cfg.Audio, log.Named("audio"))
	if err := mixer.Init(); err != nil {
		// The game runs silently rather than failing
		log.Warn("audio unavailable", zap.Error(err))
		cfg.Audio.Enabled = false
		mixer = audio.NewMixer(cfg.Audio, log.Named("audio"))
	}
	defer mixer.Close()

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g, err := newGame(eng, mixer, cfg, log.Named("game"), seed)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := eng.Run(g.Handlers()); err != nil {
		return err
	}
	stats := eng.Stats()
	log.Info("game over",
		zap.Int("score", g.score),
		zap.Uint64("frames", stats.Frames),
		zap.Uint64("overruns", stats.Overruns))
	return nil
}

// forwardSignals turns the first signal on sig into a quit request
// The returned stop function ends the forwarding goroutine and waits for it
func forwardSignals(sig <-chan os.Signal, quit func() error) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-sig:
			_ = quit()
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}
