package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// Init builds the global logger for environment. An empty lvl picks info in
// production and debug elsewhere.
func Init(environment, lvl string) error {
	var conf zap.Config
	if environment == "production" {
		conf = zap.NewProductionConfig()
		level.SetLevel(zapcore.InfoLevel)
	} else {
		conf = zap.NewDevelopmentConfig()
		level.SetLevel(zapcore.DebugLevel)
	}

	if err := SetLevel(lvl); err != nil {
		return err
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at runtime. An empty lvl
// keeps the current level.
func SetLevel(lvl string) error {
	if lvl == "" {
		return nil
	}

	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("zapcore.ParseLevel -> %w", err)
	}
	level.SetLevel(parsed)

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
