package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/recordapi/internal/flagx"
)

var ownedFlags = flagx.Owned{
	Value: []string{"a", "g", "d", "s", "p", "t", "r", "n", "w", "samesite", "log-level"},
	Bool:  []string{"secure"},
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string         HTTP bind address (e.g., ":8080")
//	-g string         gRPC health bind address
//	-d string         PostgreSQL DSN
//	-s string         session token HMAC secret
//	-p string         password salt
//	-t int            session ttl, minutes
//	-r string         Redis address for sign-in throttling
//	-n int            sign-in attempts per window
//	-w int            sign-in window, minutes
//	-secure           mark the session cookie Secure
//	-samesite string  session cookie SameSite policy
//	-log-level string log level
//
// Duration flags are accepted as integers in minutes.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session secret key")
	fs.StringVar(&config.PasswordSalt, "p", config.PasswordSalt, "password salt")
	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session ttl (in minutes)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.IntVar(&config.SignInAttempts, "n", config.SignInAttempts, "sign-in attempts per window")
	signInWindow := fs.Int("w", int(config.SignInWindow.Minutes()), "sign-in window (in minutes)")
	fs.BoolVar(&config.CookieSecure, "secure", config.CookieSecure, "secure session cookie")
	fs.StringVar(&config.CookieSameSite, "samesite", config.CookieSameSite, "session cookie same-site policy")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(ownedFlags.Filter(args)); err != nil {
		return err
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
	config.SignInWindow = time.Duration(*signInWindow) * time.Minute
	return nil
}
