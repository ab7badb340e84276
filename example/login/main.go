package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/davecgh/go-spew/spew"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vuquang23/go-ffxiv/config"
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
	intentName := flag.String("intent", "dry-run", "play, play-no-addon, dry-run or repair")
	dump := flag.Bool("dump", false, "print the full login result")
	resetCache := flag.Bool("reset-cache", false, "forget cached unique ids before logging in")
	flag.Parse()

	figure.NewFigure("xivlogin", "cybermedium", true).Print()
	fmt.Println()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	intent, err := outcome.ParseIntent(*intentName)
	if err != nil {
		log.Fatal().Err(err).Msg("parse intent")
	}

	cache, err := cfg.NewCache()
	if err != nil {
		log.Fatal().Err(err).Msg("open uid cache")
	}
	if *resetCache {
		resetter, ok := cache.(interface{ Reset() error })
		if !ok {
			log.Fatal().Msg("uid cache is disabled, set XL_UID_CACHE")
		}
		if err := resetter.Reset(); err != nil {
			log.Fatal().Err(err).Msg("reset uid cache")
		}
		log.Info().Str("backend", string(cfg.CacheBackend)).Msg("uid cache cleared")
	}

	client, err := launcher.New(cfg.License, cache, cfg.Settings())
	if err != nil {
		log.Fatal().Err(err).Msg("create launcher")
	}
	if cfg.Proxy != "" {
		if err := client.SetProxy(cfg.Proxy); err != nil {
			log.Fatal().Err(err).Msg("set proxy")
		}
	}

	ctx := context.Background()

	gate, err := client.GetGateStatusWithRetry(ctx, cfg.ClientLanguage, 3, time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("gate status")
	}
	if !gate.Status {
		log.Fatal().Msg("login gate is closed, maintenance in progress")
	}

	bootPatches, err := client.CheckBootVersion(ctx, cfg.GamePath, false)
	if err != nil {
		log.Fatal().Err(err).Msg("check boot version")
	}
	if len(bootPatches) > 0 {
		log.Fatal().Int("patches", len(bootPatches)).Msg("boot needs patching, run the official patcher first")
	}

	if otp == "" && cfg.OTPSecret != "" {
		otp, err = totp.GenerateCode(cfg.OTPSecret, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("generate otp")
		}
	}

	result, err := client.Login(ctx, launcher.LoginDetails{
		UserName: userName,
		Password: password,
		OTP:      otp,
	}, launcher.LoginOptions{
		UseCache:         cfg.UseCache,
		GamePath:         cfg.GamePath,
		ForceBaseVersion: intent == outcome.IntentRepair,
		IsFreeTrial:      cfg.IsFreeTrial,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("login")
	}

	if *dump {
		fmt.Println(spew.Sdump(result))
	}

	decision := outcome.Resolve(result, intent)
	if decision.Action == outcome.ActionReject {
		log.Fatal().Err(decision.Reason).Stringer("state", result.State).Msg("login rejected")
	}
	log.Info().
		Stringer("state", result.State).
		Stringer("action", decision.Action).
		Bool("launch", decision.Launch).
		Bool("addons", decision.Addons).
		Int("patches", len(result.PendingPatches)).
		Msg("login finished")
}
