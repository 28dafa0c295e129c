// Package config sets defaults and reads environment/config values
// used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can start
// working. Returns an error if something is critically wrong and the
// application can't run because of that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("mongo.uri", "mongodb_uri")
	v.BindEnv("mongo.database", "mongodb_database")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.username", "mail_username")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.from", "mail_from")

	v.BindEnv("otp.ttl_seconds", "otp_ttl_seconds")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("argon.memory", "argon_memory")
	v.BindEnv("argon.iterations", "argon_iterations")
	v.BindEnv("argon.parallelism", "argon_parallelism")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5000)

	v.SetDefault("mongo.database", "bloodlink")

	v.SetDefault("mail.port", 587)

	// Plain seconds, so OTP_TTL_SECONDS=300 means five minutes
	v.SetDefault("otp.ttl_seconds", 300)

	v.SetDefault("argon.memory", 64*1024)
	v.SetDefault("argon.iterations", 3)
	v.SetDefault("argon.parallelism", 2)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional as long as every required
		// value arrives through the environment
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("mongo.uri") == "" {
		return errors.New("mongo.uri can't be empty")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail.host can't be empty")
	}

	if v.GetString("mail.username") == "" {
		return errors.New("mail.username can't be empty")
	}

	if v.GetString("mail.password") == "" {
		return errors.New("mail.password can't be empty")
	}

	if v.GetString("mail.from") == "" {
		return errors.New("mail.from can't be empty")
	}

	if v.GetInt("otp.ttl_seconds") <= 0 {
		return errors.New("otp.ttl_seconds must be bigger than 0")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so one has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		return errors.New("jwt.secret can't be empty")
	}

	return nil
}
