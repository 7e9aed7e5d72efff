package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

type LogLevel gormlogger.LogLevel

const (
	Silent LogLevel = iota + 1
	Error
	Warn
	Info
)

type LogConfig struct {
	LogLevel                  LogLevel `yaml:"log_level" mapstructure:"log_level"`
	SlowThresholdMs           int      `yaml:"slow_threshold_ms" mapstructure:"slow_threshold_ms"`
	IgnoreRecordNotFoundError bool     `yaml:"ignore_record_not_found_error" mapstructure:"ignore_record_not_found_error"`

	slowThreshold time.Duration
}

// logger bridges gorm's logging interface onto the zerolog logger carried
// in the request context.
type logger struct {
	cfg LogConfig
}

func newLogger(cfg LogConfig) gormlogger.Interface {
	cfg.slowThreshold = time.Duration(cfg.SlowThresholdMs) * time.Millisecond
	return &logger{cfg: cfg}
}

func (l *logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newlogger := *l
	newlogger.cfg.LogLevel = LogLevel(level)
	return &newlogger
}

func (l logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.LogLevel >= Info {
		log.Ctx(ctx).Info().Str("caller", utils.FileWithLineNum()).Msgf(msg, data...)
	}
}

func (l logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.LogLevel >= Warn {
		log.Ctx(ctx).Warn().Str("caller", utils.FileWithLineNum()).Msgf(msg, data...)
	}
}

func (l logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.LogLevel >= Error {
		log.Ctx(ctx).Error().Str("caller", utils.FileWithLineNum()).Msgf(msg, data...)
	}
}

func (l logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.cfg.LogLevel >= Error && (!errors.Is(err, gormlogger.ErrRecordNotFound) || !l.cfg.IgnoreRecordNotFoundError):
		sql, rows := fc()
		log.Ctx(ctx).Error().
			Err(err).
			Str("caller", utils.FileWithLineNum()).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("query failed")
	case l.cfg.slowThreshold != 0 && elapsed > l.cfg.slowThreshold && l.cfg.LogLevel >= Warn:
		sql, rows := fc()
		log.Ctx(ctx).Warn().
			Str("caller", utils.FileWithLineNum()).
			Dur("elapsed", elapsed).
			Dur("slow_threshold", l.cfg.slowThreshold).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("slow query")
	case l.cfg.LogLevel == Info:
		sql, rows := fc()
		log.Ctx(ctx).Info().
			Str("caller", utils.FileWithLineNum()).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("query")
	}
}
