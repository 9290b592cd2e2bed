/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to Logger.
type ZapLogger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger wraps l. SetLevel can only raise the level above the one l's
// core was built with.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.LevelOf(l.Core()))
	return &ZapLogger{
		level: level,
		sugar: l.WithOptions(zap.IncreaseLevel(level)).Sugar(),
	}
}

// NewProductionZapLogger builds a JSON logger named "database" at levelStr.
func NewProductionZapLogger(levelStr string) (*ZapLogger, error) {
	lvl, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zl := NewZapLogger(l.Named("database"))
	zl.level.SetLevel(lvl)
	return zl, nil
}

func (l *ZapLogger) SetLevel(level LogLevel) {
	switch level {
	case LogLevelInfo:
		l.level.SetLevel(zapcore.InfoLevel)
	case LogLevelWarn:
		l.level.SetLevel(zapcore.WarnLevel)
	case LogLevelError:
		l.level.SetLevel(zapcore.ErrorLevel)
	default:
		l.level.SetLevel(zapcore.DebugLevel)
	}
}

func (l *ZapLogger) Debug(msg string, fields ...interface{}) { l.sugar.Debugw(msg, pairs(fields)...) }

func (l *ZapLogger) Info(msg string, fields ...interface{}) { l.sugar.Infow(msg, pairs(fields)...) }

func (l *ZapLogger) Warn(msg string, fields ...interface{}) { l.sugar.Warnw(msg, pairs(fields)...) }

func (l *ZapLogger) Error(msg string, fields ...interface{}) { l.sugar.Errorw(msg, pairs(fields)...) }

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error { return l.sugar.Sync() }

// pairs keeps a trailing key without a value under "extra", as toFields does.
func pairs(kv []interface{}) []interface{} {
	if len(kv)%2 == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv)+1)
	out = append(out, kv[:len(kv)-1]...)
	return append(out, "extra", kv[len(kv)-1])
}
