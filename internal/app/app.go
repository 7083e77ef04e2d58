package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/five82/listsync/internal/buffer"
	"github.com/five82/listsync/internal/config"
	"github.com/five82/listsync/internal/prefs"
	"github.com/five82/listsync/internal/source"
	"github.com/five82/listsync/internal/state"
	"github.com/five82/listsync/internal/ui"
)

// Options configure the listsync application. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/listsync/prefs.toml
	Source     string
	PollEvery  int // seconds; zero uses config
	Async      bool
	Headless   bool
	Once       bool      // fetch a single time and exit; implies Headless
	Out        io.Writer // headless output; nil means stdout
}

// Run boots listsync until the context is cancelled or the UI exits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = applyOverrides(cfg, opts)
	if cfg.Source == "" {
		return errors.New("no source configured (set source in config.toml or pass -source)")
	}
	if !cfg.IsRemote() {
		if cfg.Source, err = config.ExpandPath(cfg.Source); err != nil {
			return fmt.Errorf("resolve source: %w", err)
		}
	}

	src, err := source.Open(cfg.Source, cfg.MaxItems)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	glog.Infof("[source] using %s (async=%t order=%s equality=%s)", src.Describe(), cfg.Asynchronous, cfg.Order, cfg.Equality)

	buf := buffer.NewFunc(cfg.Equality.Func(),
		buffer.WithAsynchronous[string](cfg.Asynchronous),
		buffer.WithTransform(cfg.Order.Transform()),
	)
	store := state.NewStore(src.Describe(), cfg.History)
	buf.Register(store)

	headless := opts.Headless || opts.Once
	if headless {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		buf.Register(&printer{w: out})
	}

	poller := &Poller{
		Source:   src,
		Buffer:   buf,
		Store:    store,
		Interval: cfg.PollInterval,
	}
	if opts.Once {
		return poller.Once(ctx)
	}

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Watch {
		events, err := source.Watch(pollCtx, src)
		switch {
		case errors.Is(err, source.ErrUnsupported):
		case err != nil:
			glog.Warningf("[source] watch disabled, polling every %s: %v", cfg.PollInterval, err)
		default:
			poller.Events = events
		}
	}

	done := poller.Start(pollCtx)

	var runErr error
	if headless {
		<-ctx.Done()
	} else {
		userPrefs := prefs.Load(opts.PrefsPath)
		theme := cfg.Theme
		if userPrefs.Theme != "" {
			theme = userPrefs.Theme
		}
		runErr = ui.Run(ui.Options{
			Context:     pollCtx,
			Store:       store,
			Stats:       buf.Stats,
			RefreshTick: time.Second,
			ThemeName:   theme,
			HideChanges: userPrefs.HideChanges,
			PrefsPath:   opts.PrefsPath,
		})
	}

	cancel()
	<-done
	return runErr
}

func applyOverrides(cfg config.Config, opts Options) config.Config {
	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if opts.Async {
		cfg.Asynchronous = true
	}
	return cfg
}
