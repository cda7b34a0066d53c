package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/NERVsystems/tripreplay/pkg/config"
	"github.com/NERVsystems/tripreplay/pkg/render"
	"github.com/NERVsystems/tripreplay/pkg/replay"
	"github.com/NERVsystems/tripreplay/pkg/schedule"
	"github.com/NERVsystems/tripreplay/pkg/server"
	"github.com/NERVsystems/tripreplay/pkg/stream"
	"github.com/NERVsystems/tripreplay/pkg/tools"
	"github.com/NERVsystems/tripreplay/pkg/trip"
	"github.com/NERVsystems/tripreplay/pkg/version"
)

var (
	showVersionFlag bool
	debug           bool
	generateConfig  string
	configPath      string
	dataPath        string
	mode            string
	listen          string
	autoplay        bool
)

func init() {
	flag.BoolVar(&showVersionFlag, "version", false, "Display version information")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&generateConfig, "generate-config", "", "Generate a Claude Desktop Client config file at the specified path")
	flag.StringVar(&configPath, "config", "", "YAML configuration file")
	flag.StringVar(&dataPath, "data", "", "Trip file to replay (.json or .gpx); empty uses the bundled trip")
	flag.StringVar(&mode, "mode", "", "Run mode: mcp or headless")
	flag.StringVar(&listen, "listen", "", "Address for the WebSocket map stream, e.g. localhost:8080")
	flag.BoolVar(&autoplay, "autoplay", false, "Start playing as soon as the trip is loaded")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()

	// Configure logging
	logLevel := cfg.Level()
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Show version and exit if requested
	if showVersionFlag {
		fmt.Println(version.String())
		return
	}

	// Generate Claude Desktop config if requested
	if generateConfig != "" {
		if err := generateClientConfig(generateConfig, clientArgs()); err != nil {
			logger.Error("failed to generate config", "error", err)
			os.Exit(1)
		}
		logger.Info("successfully generated Claude Desktop Client config", "path", generateConfig)
		return
	}

	logger.Info("starting trip replay",
		append(version.Info(), "mode", cfg.Mode, "log_level", logLevel.String())...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("replay failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig returns the file configuration, or the defaults, with any flags
// given on the command line applied on top.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Data = dataPath
		case "mode":
			cfg.Mode = mode
		case "listen":
			cfg.Listen = listen
		case "autoplay":
			cfg.Autoplay = autoplay
		}
	})
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	source := trip.Bundled()
	if cfg.Data != "" {
		source = trip.Open(cfg.Data)
	}
	records, err := source.Load(ctx)
	if err != nil {
		return err
	}
	logger.Info("trip loaded", "records", len(records), "source", dataName(cfg.Data))

	zone, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := schedule.NewLoop(
		schedule.WithFrameInterval(cfg.Playback.FrameInterval()),
		schedule.WithLoopLogger(logger))
	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	renderers := render.Multi{render.NewLogRenderer(logger)}
	var hub *stream.Hub
	if cfg.Listen != "" {
		hub = stream.NewHub(logger)
		renderers = append(renderers, hub)
	}

	session := replay.NewSession(records, loop, renderers,
		replay.WithTickInterval(cfg.Playback.TickInterval()),
		replay.WithAnimationDuration(cfg.Playback.Animation()),
		replay.WithSeekWindow(cfg.Playback.SeekWindow()),
		replay.WithRegionMeters(cfg.Playback.RegionMeters),
		replay.WithTimeZone(zone),
		replay.WithLogger(logger))

	var startErr error
	if err := loop.Do(ctx, func() {
		if startErr = session.Start(); startErr != nil {
			return
		}
		if cfg.Autoplay || cfg.Mode == config.ModeHeadless {
			session.TogglePlay()
		}
	}); err != nil {
		return err
	}
	if startErr != nil {
		return startErr
	}
	defer loop.Do(context.Background(), session.Stop)

	if hub != nil {
		hub.SetControls(replay.NewControls(loop, session))
		httpSrv := serveStream(cfg.Listen, hub, logger)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			hub.Close()
			httpSrv.Shutdown(shutdownCtx)
		}()
	}

	switch cfg.Mode {
	case config.ModeHeadless:
		select {
		case <-session.Done():
			logger.Info("replay complete")
		case <-ctx.Done():
			logger.Info("replay interrupted")
		case err := <-loopErr:
			return err
		}
		return nil

	default:
		srv, err := server.NewServer(tools.NewSessionPlayer(loop, session), logger)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}
		logger.Info("server initialized, waiting for requests")
		return srv.Run()
	}
}

func serveStream(addr string, hub *stream.Hub, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("map stream listening", "addr", addr, "path", "/ws")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("map stream failed", "error", err)
		}
	}()
	return httpSrv
}

func dataName(path string) string {
	if path == "" {
		return "bundled"
	}
	return path
}

// clientArgs are the flags the desktop client should start us with.
func clientArgs() []string {
	var args []string
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			args = append(args, "-config", abs)
		}
	}
	if dataPath != "" {
		if abs, err := filepath.Abs(dataPath); err == nil {
			args = append(args, "-data", abs)
		}
	}
	return args
}

// generateClientConfig creates or updates a Claude Desktop Client config file
func generateClientConfig(outputPath string, args []string) error {
	logger := slog.Default()

	if outputPath == "" {
		return errors.New("config path must not be empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("config path %q must have a .json extension", outputPath)
	}
	if strings.Contains(filepath.ToSlash(outputPath), "..") {
		return fmt.Errorf("config path %q must not contain '..'", outputPath)
	}

	// Get absolute path to executable
	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0]
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}

	if args == nil {
		args = []string{}
	}
	replayConfig := map[string]any{
		"command": absExecPath,
		"args":    args,
	}

	var config map[string]any
	if data, err := os.ReadFile(outputPath); err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			logger.Warn("existing config is not valid JSON, will create new", "error", err)
			config = nil
		}
	}
	if config == nil {
		config = make(map[string]any)
	}

	mcpServers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		mcpServers = make(map[string]any)
		config["mcpServers"] = mcpServers
	}
	mcpServers["TripReplay"] = replayConfig

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
