package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultJWTAccessTTL      = "24h"
	defaultSweepInterval     = "30s"
	defaultSweepGrace        = "2m"
	defaultImmediateDueSpan  = "5m"
	defaultImmediateDueDelay = "1m"
	defaultListenAddr        = ":8080"
)

// RuntimeConfig is the full env-driven configuration, parsed once at startup.
type RuntimeConfig struct {
	ListenAddr  string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	// Payment expiry sweep: payments whose due date landed within
	// ImmediateDueSpan of creation count as "pay now"; once pending past
	// SweepGrace they go overdue and their pending booking is cancelled.
	SweepInterval     time.Duration
	SweepGrace        time.Duration
	ImmediateDueSpan  time.Duration
	ImmediateDueDelay time.Duration

	// Flat surcharge applied when the sweep marks a payment overdue.
	OverduePenalty float64
}

func Load() (*RuntimeConfig, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	jwtTTL, err := durationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := durationEnv("PAYMENT_SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		return nil, err
	}
	sweepGrace, err := durationEnv("PAYMENT_SWEEP_GRACE", defaultSweepGrace)
	if err != nil {
		return nil, err
	}
	immediateSpan, err := durationEnv("PAYMENT_IMMEDIATE_DUE_SPAN", defaultImmediateDueSpan)
	if err != nil {
		return nil, err
	}
	immediateDelay, err := durationEnv("PAYMENT_IMMEDIATE_DUE_DELAY", defaultImmediateDueDelay)
	if err != nil {
		return nil, err
	}
	penalty, err := floatEnv("PAYMENT_OVERDUE_PENALTY", "0")
	if err != nil {
		return nil, err
	}

	return &RuntimeConfig{
		ListenAddr:        envOrDefault("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL:       dsn,
		JWTSecret:         secret,
		JWTTTL:            jwtTTL,
		SweepInterval:     sweepInterval,
		SweepGrace:        sweepGrace,
		ImmediateDueSpan:  immediateSpan,
		ImmediateDueDelay: immediateDelay,
		OverduePenalty:    penalty,
	}, nil
}

// SweepConfig is the subset of configuration the standalone sweep command
// needs; it runs without JWT or listen settings.
type SweepConfig struct {
	DatabaseURL      string
	SweepGrace       time.Duration
	ImmediateDueSpan time.Duration
	OverduePenalty   float64
}

func LoadSweep() (*SweepConfig, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	sweepGrace, err := durationEnv("PAYMENT_SWEEP_GRACE", defaultSweepGrace)
	if err != nil {
		return nil, err
	}
	immediateSpan, err := durationEnv("PAYMENT_IMMEDIATE_DUE_SPAN", defaultImmediateDueSpan)
	if err != nil {
		return nil, err
	}
	penalty, err := floatEnv("PAYMENT_OVERDUE_PENALTY", "0")
	if err != nil {
		return nil, err
	}
	return &SweepConfig{
		DatabaseURL:      dsn,
		SweepGrace:       sweepGrace,
		ImmediateDueSpan: immediateSpan,
		OverduePenalty:   penalty,
	}, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func durationEnv(name, def string) (time.Duration, error) {
	raw := envOrDefault(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return d, nil
}

func floatEnv(name, def string) (float64, error) {
	raw := envOrDefault(name, def)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return f, nil
}
