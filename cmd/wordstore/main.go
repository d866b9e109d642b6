// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordstore IPC server or its interactive CLI.

wordstore counts word occurrences in a prefix tree and answers top-N
suggestions for a prefix, most frequent first and ties in byte order.

# Usage

Serve msgpack requests on stdin/stdout with corpora from data/:

	wordstore

Load extra corpus files and open the CLI:

	wordstore -c -limit 5 books.txt cities.lst

# Corpora

Every *.txt file in the data dir (see [dict] in the config) is split on
whitespace and each token is inserted once. Files ending in .lst or .words hold
one word per line. Words are stored exactly as they appear.

# Configuration

	[server]
	default_limit = 10
	max_limit = 64
	max_prefix = 60
	cache_size = 1024

	[dict]
	data_dir = "data/"
	pattern = "*.txt"

	[cli]
	default_limit = 10
	default_min_len = 0
	default_max_len = 60

The file is created with defaults on first run under ~/.config/wordstore/.

# Command Line Flags

	-config string   config file path
	-data string     corpus directory (overrides dict.data_dir)
	-d               debug logging
	-c               run the CLI instead of the server
	-limit int       CLI suggestion count
	-prmin int       CLI minimum prefix length
	-prmax int       CLI maximum prefix length
	-cache int       result cache size (overrides server.cache_size, 0 disables)
	-srvlimit int    IPC default limit (overrides server.default_limit)
	-maxlimit int    IPC limit ceiling (overrides server.max_limit)
	-maxprefix int   IPC prefix length ceiling (overrides server.max_prefix)
	-save-config     write the server overrides back to the config file
	-reset-config    rewrite the default config file and exit
	-version         print version and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordstore/internal/cli"
	"github.com/bastiangx/wordstore/internal/logger"
	"github.com/bastiangx/wordstore/internal/utils"
	"github.com/bastiangx/wordstore/pkg/config"
	"github.com/bastiangx/wordstore/pkg/dictionary"
	"github.com/bastiangx/wordstore/pkg/server"
	"github.com/bastiangx/wordstore/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordstore"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, corpus loading and the chosen front end.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config.toml with built-in defaults and exit")
	dataDir := flag.String("data", "", "Directory containing corpus files (default from config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", -1, "Number of suggestions to return in CLI mode (default from config)")
	minPrefix := flag.Int("prmin", -1, "Minimum prefix length in CLI mode (default from config)")
	maxPrefix := flag.Int("prmax", -1, "Maximum prefix length in CLI mode (default from config)")
	srvLimit := flag.Int("srvlimit", -1, "Default suggestion count for IPC requests (default from config)")
	srvMaxLimit := flag.Int("maxlimit", -1, "Largest limit an IPC request may ask for (default from config)")
	srvMaxPrefix := flag.Int("maxprefix", -1, "Longest prefix an IPC request may send (default from config)")
	saveConfig := flag.Bool("save-config", false, "Persist -srvlimit, -maxlimit and -maxprefix to the config file")
	cacheSize := flag.Int("cache", -1, fmt.Sprintf("Result cache entries, 0 disables (default %d)", defaults.Server.CacheSize))

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Print("Config reset", "path", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	appConfig, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedPath))

	savePath := ""
	if *saveConfig {
		if usedPath == "" {
			log.Warn("No config file in use, server overrides will not be saved")
		}
		savePath = usedPath
	}
	if err := appConfig.Update(savePath, flagValue(*srvLimit), flagValue(*srvMaxLimit), flagValue(*srvMaxPrefix)); err != nil {
		log.Errorf("Failed to save config: %v", err)
	}

	if *cacheSize >= 0 {
		appConfig.Server.CacheSize = *cacheSize
	}
	completer := suggest.NewCompleter(appConfig.Server.CacheSize)

	loadCorpora(completer, appConfig, *dataDir, flag.Args())

	if *cliMode {
		cliCfg := appConfig.CLI
		if *limit >= 0 {
			cliCfg.DefaultLimit = *limit
		}
		if *minPrefix >= 0 {
			cliCfg.DefaultMinLen = *minPrefix
		}
		if *maxPrefix >= 0 {
			cliCfg.DefaultMaxLen = *maxPrefix
		}
		log.Debug("Input info:",
			"minPrefix", cliCfg.DefaultMinLen,
			"maxPrefix", cliCfg.DefaultMaxLen,
			"limit", cliCfg.DefaultLimit)

		inputHandler := cli.NewInputHandler(completer, cliCfg.DefaultMinLen, cliCfg.DefaultMaxLen, cliCfg.DefaultLimit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// flagValue returns nil for an unset (negative) int flag.
func flagValue(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

// loadCorpora fills the completer from the data dir and any extra files.
// A missing data dir is not fatal: the store simply starts empty.
func loadCorpora(completer *suggest.Completer, cfg *config.Config, dataFlag string, files []string) {
	dir := cfg.Dict.DataDir
	if dataFlag != "" {
		dir = dataFlag
	}

	if dir != "" {
		if resolver, err := utils.NewPathResolver(); err == nil {
			dir = resolver.GetDataDir(dir, cfg.Dict.Pattern)
		} else {
			log.Warnf("Failed to initialize path resolver: %v", err)
		}

		stats, err := dictionary.NewLoader(dir, cfg.Dict.Pattern).LoadDir(completer)
		if err != nil {
			log.Warnf("No corpus loaded from %s: %v", dir, err)
		} else {
			log.Debugf("Loaded %s words from %d files in %v (%d failed)",
				utils.FormatWithCommas(stats.Words), stats.Files, stats.Elapsed, stats.FailedFiles)
		}
	}

	for _, f := range files {
		n, err := dictionary.LoadFile(f, completer)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", f, err)
		}
		log.Debugf("Loaded %s words from %s", utils.FormatWithCommas(n), f)
	}

	stats := completer.Stats()
	log.Debug("Store ready", "words", stats["words"], "nodes", stats["nodes"], "inserts", stats["inserts"])
}

// printVersion shows a styled banner on stderr.
func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ wordstore ] prefix counts and top-N suggestions")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
}
