package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	MongoURI          string `env:"MONGO-URI" ini:"mongo_uri"`
	FlowConfigPath    string `env:"FLOW-CONFIG-PATH" ini:"flow_config_path"`
	GeneratorProvider string `env:"GENERATOR-PROVIDER" ini:"generator_provider"` // anthropic | groq | ollama | none
	GeneratorModel    string `env:"GENERATOR-MODEL" ini:"generator_model"`
}
