package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/ncuwatch/taoyuanwx/internal/api"
	"github.com/ncuwatch/taoyuanwx/internal/config"
	"github.com/ncuwatch/taoyuanwx/internal/forecast"
	"github.com/ncuwatch/taoyuanwx/internal/geo"
	"github.com/ncuwatch/taoyuanwx/internal/ingest"
	"github.com/ncuwatch/taoyuanwx/internal/qpf"
	"github.com/ncuwatch/taoyuanwx/internal/render"
	"github.com/ncuwatch/taoyuanwx/internal/store"
)

type cli struct {
	Config string `help:"Path to YAML config file." type:"path" env:"TAOYUANWX_CONFIG"`

	Serve  serveCmd  `cmd:"" default:"1" help:"Run the forecast server."`
	Fetch  fetchCmd  `cmd:"" help:"Fetch the feed once and exit."`
	Render renderCmd `cmd:"" help:"Print a forecast table to the terminal."`
}

// app is the assembled runtime shared by all commands.
type app struct {
	cfg       config.Config
	loc       *time.Location
	store     *store.Store
	scheduler *ingest.Scheduler
}

func buildApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("main: could not load timezone %s, using UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}

	boundaries, err := geo.LoadBoundaries(cfg.BoundaryPath, cfg.County)
	if err != nil {
		log.Printf("main: boundaries unavailable, QPF sampling disabled: %v", err)
	} else {
		log.Printf("main: loaded %d district boundaries", len(boundaries))
	}

	var qf *qpf.Fetcher
	if len(boundaries) > 0 && len(cfg.QPF.URLs) > 0 {
		qf = qpf.NewFetcher(cfg.QPF)
	}

	st := store.New()
	client := ingest.NewClient(cfg.DataURL)
	sched := ingest.NewScheduler(st, client, qf, boundaries, cfg.RefreshInterval.Std())

	return &app{cfg: cfg, loc: loc, store: st, scheduler: sched}, nil
}

type serveCmd struct{}

func (c *serveCmd) Run(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Run(ctx)

	server := api.NewServer(a.store, a.cfg.Listen, a.loc)
	log.Printf("main: listening on %s", a.cfg.Listen)
	return server.Run(ctx)
}

type fetchCmd struct{}

func (c *fetchCmd) Run(a *app) error {
	if err := a.scheduler.Refresh(); err != nil {
		return err
	}
	ds := a.store.Latest()
	log.Printf("main: fetched %d districts at %s", len(ds.Districts), ds.FetchedAt.In(a.loc).Format(time.RFC3339))
	return nil
}

type renderCmd struct {
	Var  string `help:"Variable to display." default:"溫度"`
	Sub  string `help:"Sub-variable key."`
	Mode string `help:"Grouping mode: none, 3hours or 6hours." default:"none"`
}

func (c *renderCmd) Run(a *app) error {
	if err := a.scheduler.Refresh(); err != nil {
		return err
	}

	view, err := api.BuildTable(a.store.Latest(), forecast.NewGrouper(a.loc), c.Var, c.Sub, c.Mode)
	if err != nil {
		return err
	}
	render.Table(os.Stdout, view)
	return nil
}

func main() {
	var flags cli
	ctx := kong.Parse(&flags,
		kong.Name("taoyuanwx"),
		kong.Description("Township forecast choropleth server for Taoyuan."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	a, err := buildApp(flags.Config)
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	ctx.FatalIfErrorf(ctx.Run(a))
}
