package main

import "time"

type Config struct {
	Host                      string        `env:"HOST,default=localhost"`
	Port                      int           `env:"PORT,default=8080"`
	LogLevel                  string        `env:"LOG_LEVEL,required=true"`
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath             string        `env:"BLUGE_FILEPATH,required=true"`
	JWTSecret                 string        `env:"JWT_SECRET,required=true"`
	TokenDuration             time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	VerifyTimeout             time.Duration `env:"AUTH_VERIFY_TIMEOUT,default=5s"`
	DeliveryTimeout           time.Duration `env:"DELIVERY_TIMEOUT,default=5s"`
	HeartbeatInterval         time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,default=5s"`
	ModerationCharReplacement rune          `env:"MODERATION_CHARACTER_REPLACEMENT,required=true"`
	ModerationFallback        string        `env:"MODERATION_FALLBACK_LANGUAGE,default=eng"`
}
