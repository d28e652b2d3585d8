package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/recordapi/internal/flagx"
	"github.com/dmitrijs2005/recordapi/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations are
// read with timex.Duration so both "90m" and integer nanoseconds work.
// Only keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	PasswordSalt     *string         `json:"password_salt"`
	SessionTTL       *timex.Duration `json:"session_ttl"`
	CookieSecure     *bool           `json:"cookie_secure"`
	CookieSameSite   *string         `json:"cookie_same_site"`
	UsersTable       *string         `json:"users_table"`
	NotesTable       *string         `json:"notes_table"`
	RedisAddr        *string         `json:"redis_addr"`
	SignInAttempts   *int            `json:"sign_in_attempts"`
	SignInWindow     *timex.Duration `json:"sign_in_window"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays values from the file named by -c/-config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.PasswordSalt, c.PasswordSalt)
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	setIf(&config.CookieSecure, c.CookieSecure)
	setIf(&config.CookieSameSite, c.CookieSameSite)
	setIf(&config.UsersTable, c.UsersTable)
	setIf(&config.NotesTable, c.NotesTable)
	setIf(&config.RedisAddr, c.RedisAddr)
	setIf(&config.SignInAttempts, c.SignInAttempts)
	if c.SignInWindow != nil {
		config.SignInWindow = c.SignInWindow.Duration
	}
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFormat, c.LogFormat)

	return nil
}
