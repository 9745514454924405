package config

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
