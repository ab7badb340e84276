package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vuquang23/go-ffxiv/config"
	"github.com/vuquang23/go-ffxiv/integrity"
	"github.com/vuquang23/go-ffxiv/launcher"
	"github.com/vuquang23/go-ffxiv/outcome"
)

var (
	userName string
	password string
	otp      string
)

func init() {
	userName = os.Getenv("XL_USERNAME")
	password = os.Getenv("XL_PASSWORD")
	otp = os.Getenv("XL_OTP")
}

func main() {
	patchDir := flag.String("patches", "patches", "directory holding downloaded patch files")
	token := flag.Bool("token", false, "request download tokens for broken patches")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	client, err := launcher.New(cfg.License, nil, cfg.Settings())
	if err != nil {
		log.Fatal().Err(err).Msg("create launcher")
	}
	if cfg.Proxy != "" {
		if err := client.SetProxy(cfg.Proxy); err != nil {
			log.Fatal().Err(err).Msg("set proxy")
		}
	}

	ctx := context.Background()

	// Logging in as the base version makes the server list every patch.
	result, err := client.Login(ctx, launcher.LoginDetails{
		UserName: userName,
		Password: password,
		OTP:      otp,
	}, launcher.LoginOptions{
		GamePath:         cfg.GamePath,
		ForceBaseVersion: true,
		IsFreeTrial:      cfg.IsFreeTrial,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("login")
	}

	decision := outcome.Resolve(result, outcome.IntentRepair)
	if decision.Action != outcome.ActionRepair {
		log.Fatal().Err(decision.Reason).Stringer("state", result.State).Msg("cannot repair")
	}

	targets := make([]integrity.Target, 0, len(result.PendingPatches))
	urls := make(map[string]string, len(result.PendingPatches))
	for _, entry := range result.PendingPatches {
		if !entry.HasHashes() {
			continue
		}
		path := filepath.Join(*patchDir, entry.Filename())
		urls[path] = entry.URL
		targets = append(targets, integrity.Target{
			Path:      path,
			Length:    entry.Length,
			BlockSize: entry.HashBlockSize,
			HashType:  entry.HashType,
			Hashes:    entry.Hashes,
		})
	}

	broken, err := integrity.NewVerifier().VerifyAll(ctx, targets, cfg.VerifyWorkers)
	if err != nil {
		log.Fatal().Err(err).Msg("verify patches")
	}
	log.Info().Int("checked", len(targets)).Int("broken", len(broken)).Msg("verification finished")

	for _, target := range broken {
		ev := log.Warn().Str("path", target.Path)
		if *token {
			url, err := client.GenPatchToken(ctx, urls[target.Path], result.UniqueID)
			if err != nil {
				log.Error().Err(err).Str("path", target.Path).Msg("gen token")
				continue
			}
			ev = ev.Str("url", url)
		}
		ev.Msg("patch file needs download")
	}
}
