// Package config loads and validates application configuration using viper
// and go-playground/validator. Values come from defaults, an optional YAML
// file and TILI_-prefixed environment variables.
package config
