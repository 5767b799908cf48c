package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"lorad/internal/common/fsutil"
	"lorad/internal/config"
	"lorad/internal/httpapi"
	"lorad/internal/manager"
	"lorad/internal/registry"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("LORAD_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	adaptersDir := flag.String("adapters-dir", "~/adapters/lora", "Directory to scan for adapter subdirectories")
	configPath := flag.String("config", "", "Optional config file (yaml/json/toml); flags override it")
	budgetMB := flag.Int("budget-mb", 0, "Memory budget in MB for all loaded adapters (0=unlimited)")
	marginMB := flag.Int("margin-mb", 0, "Reserved memory margin in MB to keep free")
	maxQueuedLoads := flag.Int("max-queued-loads", 0, "Maximum queued load requests before backpressure (0=default)")
	baseModel := flag.String("base-model", "", "Base model gguf path for the llama backend (requires -tags=llama build)")
	ctxSize := flag.Int("ctx-size", 0, "Context size passed to the llama backend")
	lruFile := flag.String("lru-file", "", "Optional file persisting last-used metadata across restarts")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (empty disables CORS)")
	flag.Parse()

	// Config file fills in whatever the flags left unset.
	var fileCfg config.Config
	if *configPath != "" {
		p, err := fsutil.ExpandHome(*configPath)
		if err != nil {
			log.Fatalf("config path: %v", err)
		}
		fileCfg, err = config.Load(p)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *addr == defaultAddr && fileCfg.Addr != "" {
		*addr = fileCfg.Addr
	}
	if fileCfg.AdaptersDir != "" && !flagSet("adapters-dir") {
		*adaptersDir = fileCfg.AdaptersDir
	}
	if *budgetMB == 0 {
		*budgetMB = fileCfg.BudgetMB
	}
	if *marginMB == 0 {
		*marginMB = fileCfg.MarginMB
	}
	if *maxQueuedLoads == 0 {
		*maxQueuedLoads = fileCfg.MaxQueuedLoads
	}
	if *baseModel == "" {
		*baseModel = fileCfg.BaseModelPath
	}
	origins := splitCSV(*corsOrigins)
	if len(origins) == 0 {
		origins = fileCfg.CORSOrigins
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	httpapi.SetLogger(logger)

	// Scan the adapters directory into the catalog.
	catalog, err := registry.LoadDir(*adaptersDir)
	if err != nil {
		log.Fatalf("failed to scan adapters: %v", err)
	}

	lruPath := *lruFile
	if lruPath != "" {
		if lruPath, err = fsutil.ExpandHome(lruPath); err != nil {
			log.Fatalf("lru file path: %v", err)
		}
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Catalog:        catalog,
		BudgetMB:       *budgetMB,
		MarginMB:       *marginMB,
		MaxQueuedLoads: *maxQueuedLoads,
		DrainTimeout:   time.Duration(fileCfg.DrainTimeoutMS) * time.Millisecond,
		LRUPath:        lruPath,
		BaseModelPath:  *baseModel,
		CtxSize:        *ctxSize,
	})

	if len(origins) > 0 {
		httpapi.SetCORSOptions(true, origins,
			[]string{http.MethodGet, http.MethodPost, http.MethodDelete},
			[]string{"Content-Type", "X-Log-Level"})
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", *addr).Str("adapters_dir", *adaptersDir).Int("catalog", len(catalog)).Msg("lorad listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := mgr.Close(); err != nil {
		logger.Error().Err(err).Msg("manager close error")
	}
}

// flagSet reports whether a flag was explicitly provided on the command line.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// splitCSV splits a comma-separated list, trimming blanks.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
