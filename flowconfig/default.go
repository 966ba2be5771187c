package flowconfig

import (
	_ "embed"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

//go:embed sheisai.yaml
var defaultConfig []byte

// Default returns the embedded She Is AI framework configuration. The
// embedded file is validated at build of the binary's first use; failure to
// parse it is a programming error, not a runtime condition.
func Default() *Config {
	cfg, err := Parse(defaultConfig)
	if err != nil {
		logger.Fatal("embedded flow config is invalid", zap.Error(err))
	}
	return cfg
}
