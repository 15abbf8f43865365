package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.lost.host/meutraa/hitsound/internal/config"
	"git.lost.host/meutraa/hitsound/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		logger.Fatal(err.Error())
	}
}

func run(args []string) error {
	if err := config.LoadEnv(".env"); nil != err {
		return err
	}
	opts, err := config.Parse(args)
	if nil != err {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:      logger.LogLevel(opts.LogLevel),
		OutputPath: opts.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}); nil != err {
		return err
	}
	defer logger.Sync()

	p := &Program{Options: opts}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	switch opts.Command {
	case config.MixCommand:
		return p.Mix()
	case config.RenderCommand:
		return p.Render()
	case config.WatchCommand:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return p.Watch(ctx)
	}
	return p.Hits()
}
