package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mpcbarbosa/SeniorCare/config"
)

// NewLogger builds a zap logger from the log section of the config.
// Format "console" gives a colored development encoder, anything else JSON.
// Every entry carries service=seniorcare.
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{"service": "seniorcare"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}

// Address logs a phone number or e-mail address of a senior or caregiver
// without writing it out in full.
func Address(key, addr string) zap.Field {
	return zap.String(key, MaskAddress(addr))
}

// MaskAddress keeps the last three digits of a phone number and the first
// letter and domain of an e-mail address. Anything else, such as a
// caregiver id used for push, is returned as is.
func MaskAddress(addr string) string {
	if at := strings.LastIndexByte(addr, '@'); at > 0 {
		return addr[:1] + strings.Repeat("*", at-1) + addr[at:]
	}
	if !isPhone(addr) {
		return addr
	}
	if len(addr) <= 3 {
		return strings.Repeat("*", len(addr))
	}
	return strings.Repeat("*", len(addr)-3) + addr[len(addr)-3:]
}

func isPhone(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == ' ', r == '-':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return true
}
