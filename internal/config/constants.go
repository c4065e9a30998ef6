package config

import "time"

const (
	// Configuration file paths
	ConfigPathPokedex = "configs/catalog/pokedex.json"
	ConfigPathCards   = "configs/catalog/cards.json"
	ConfigPathBiomes  = "configs/catalog/biomes.json"

	// JSON schemas the catalog files are validated against before sync
	SchemaPathPokedex = "configs/schemas/pokedex.schema.json"
	SchemaPathCards   = "configs/schemas/cards.schema.json"
	SchemaPathBiomes  = "configs/schemas/biomes.schema.json"
)

// Database pool defaults, overridable via DB_MAX_* environment variables.
const (
	DefaultDBMaxConns    = 10
	DefaultDBMaxIdleTime = 30 * time.Minute
	DefaultDBMaxLifetime = time.Hour
)
