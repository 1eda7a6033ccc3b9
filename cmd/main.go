package main

import (
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/brettbedarf/explorer/config"
	"github.com/brettbedarf/explorer/ids"
	"github.com/brettbedarf/explorer/internal/util"
	"github.com/brettbedarf/explorer/requests"
	"github.com/brettbedarf/explorer/server"
	"github.com/brettbedarf/explorer/tree"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
		nodesDef   string
		umount     bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to a YAML or JSON seed tree")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the mount point first if needed before mounting again. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.IntVar(&verbose, "verbose", config.InfoVerbose, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", config.InfoVerbose, "--verbose (shorthand)")
	flag.Parse()

	// Load config; an explicit verbosity flag beats the file
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.NewConfigFromFile(configPath); err != nil {
			util.InitializeLogger(util.ErrorLevel)
			util.GetLogger("main").Fatal().Err(err).Str("config", configPath).Msg("Failed to load config")
		}
	}
	if configPath == "" || flagPassed("verbose", "v") {
		cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
	}

	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	mnt := flag.Arg(0)
	logger.Debug().
		Str("config", configPath).
		Str("nodes", nodesDef).
		Str("mnt", mnt).
		Str("ids", cfg.IDStrategy).
		Msg("Explorer initializing")

	ids.RegisterBuiltins()
	gen, err := ids.Get(cfg.IDStrategy)
	if err != nil {
		logger.Fatal().Err(err).Msg("Unknown id strategy")
	}

	// Build the tree
	var store *tree.Store
	if nodesDef != "" {
		def, err := requests.LoadTreeFile(nodesDef)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to read seed tree")
		}
		if store, err = tree.NewStoreFromDef(cfg, gen, def); err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to load seed tree")
		}
		logger.Info().Int("nodes", store.Len()).Str("root", store.Root()).Msg("Loaded seed tree")
	} else {
		store = tree.NewStore(cfg, gen)
		logger.Info().Str("root", store.Root()).Msg("No seed tree provided; starting empty")
	}

	if mnt == "" {
		if err := store.Render(os.Stdout); err != nil {
			logger.Fatal().Err(err).Msg("Failed to render tree")
		}
		return
	}

	// Try unmount if requested
	if umount {
		cmd := exec.Command("fusermount", "-u", mnt)
		// we ignore error here if not already mounted
		cmd.Run() // nolint:errcheck
	}

	explorer := server.New(cfg, store)
	if err := explorer.Serve(mnt); err != nil {
		logger.Fatal().Err(err).Msg("Failed to mount tree")
	}
	logger.Info().Str("mountpoint", mnt).Msg("Tree mounted successfully")

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-signalChan
	logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting tree")

	if err := explorer.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount tree")
	} else {
		logger.Info().Msg("Tree unmounted successfully")
	}

	// Show what the session left behind
	if err := store.Render(os.Stdout); err != nil {
		logger.Error().Err(err).Msg("Failed to render tree")
	}
}

// flagPassed reports whether any of names was set on the command line
func flagPassed(names ...string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				passed = true
			}
		}
	})
	return passed
}
