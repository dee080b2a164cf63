package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nstehr/rally/rally-core/agent"
	"github.com/nstehr/rally/rally-core/config"
	"github.com/nstehr/rally/rally-core/inspect"
	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/ipc"
	"github.com/nstehr/rally/rally-core/paths"
	"github.com/nstehr/rally/rally-core/rules"
	"github.com/nstehr/rally/rally-core/strategy"
	"golang.org/x/sync/errgroup"
)

const banner = `
██████╗  █████╗ ██╗     ██╗  ██╗   ██╗
██╔══██╗██╔══██╗██║     ██║  ╚██╗ ██╔╝
██████╔╝███████║██║     ██║   ╚████╔╝
██╔══██╗██╔══██║██║     ██║    ╚██╔╝
██║  ██║██║  ██║███████╗███████╗██║
╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝

Objective-Driven Battleground Navigation`

// engine is everything shared by all host connections. Registries are per
// connection.
type engine struct {
	cfg     config.Config
	library *paths.Library
	arbiter *rules.Arbiter
	strat   *agent.Strategist
	hub     *inspect.Hub
}

func main() {
	socketPath := flag.String("socket", "/tmp/rally.sock", "unix socket the host connects to")
	configPath := flag.String("config", "", "YAML config file (built-in defaults when empty)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	inspectAddr := flag.String("inspect", "", "address for the websocket decision feed, e.g. :8088 (disabled when empty)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting rally")

	eng, err := newEngine(*configPath)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return listener.Close()
	})
	g.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					if errors.Is(err, net.ErrClosed) {
						return err
					}
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			go eng.handleConn(ctx, conn)
		}
	})
	if *inspectAddr != "" {
		srv := &http.Server{Addr: *inspectAddr, Handler: eng.hub.Handler(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			slog.Info("inspect feed listening", "addr", *inspectAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			eng.hub.Close()
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdown)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("stopped with error", "error", err)
	}
	slog.Info("shutting down")
}

func newEngine(configPath string) (*engine, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
		slog.Info("config loaded", "path", configPath, "matchTypes", len(cfg.MatchTypes))
	}

	library, err := paths.LoadLibrary(cfg.PathsDir)
	if err != nil {
		return nil, fmt.Errorf("load path graphs: %w", err)
	}
	slog.Info("path graphs loaded", "dir", cfg.PathsDir, "matchTypes", library.MatchTypes())

	arbiter, err := rules.NewArbiter(cfg.Arbiter, cfg.Layouts(), cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("build arbiter: %w", err)
	}

	controller := strategy.NewController(cfg.Posture, cfg.Profiles)
	return &engine{
		cfg:     cfg,
		library: library,
		arbiter: arbiter,
		strat:   agent.NewStrategist(controller, cfg.Instance),
		hub:     inspect.NewHub(),
	}, nil
}

func (e *engine) handleConn(ctx context.Context, conn net.Conn) {
	c := ipc.NewConnection(conn, nil)
	slog.Info("new connection accepted", "conn", c.ID)

	driver := agent.NewDriver(instance.NewRegistry(e.cfg.Instance), e.library, e.arbiter, e.strat, e.cfg.Tuning)
	a := agent.New(ctx, c, driver, func(ev agent.Event) { e.hub.Broadcast(ev) }, e.cfg.DensityCellSize)
	a.Register()

	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()
	c.ReadLoop()
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
