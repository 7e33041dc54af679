// Package config loads env-tagged configuration structs from environment
// variables, with optional .env file support for local development.
//
// Each infrastructure package in this module declares its own Config struct
// with `env` tags; this package does the parsing:
//
//	var cfg postgres.Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
package config
