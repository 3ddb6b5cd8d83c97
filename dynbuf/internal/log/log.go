// Copyright 2019-2024 Xu Ruibo (hustxurb@163.com) and Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	TypeInfo  = "INFO"
	TypeWarn  = "WARN"
	TypeError = "ERROR"
	TypeDebug = "DEBUG"
)

const headerFormat = "%s.%06d %s [%s] "

type Logger struct {
	debug     bool
	outLogger *zap.Logger
	errLogger *zap.Logger
}

type Options struct {
	IsDebug      bool
	LogPath      string
	RotationTime string
}

type levelEnable struct{}

func (le levelEnable) Enabled(zapcore.Level) bool {
	return true
}

// NewLogger builds a logger and installs it as the package default. An empty
// LogPath sends everything to stderr; otherwise to LogPath.log and
// LogPath.log.err, rotated per RotationTime.
func NewLogger(opts *Options) *Logger {
	var outWriter, errWriter zapcore.WriteSyncer
	if opts.LogPath == "" {
		outWriter = zapcore.Lock(os.Stderr)
		errWriter = outWriter
	} else {
		_ = os.MkdirAll(path.Dir(opts.LogPath), 0777)
		outWriter = getWriter(opts.LogPath+".log", opts.RotationTime)
		errWriter = getWriter(opts.LogPath+".log.err", opts.RotationTime)
	}

	l := &Logger{debug: opts.IsDebug}
	l.outLogger = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "out"}), outWriter, levelEnable{}))
	l.errLogger = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "err"}), errWriter, levelEnable{}))
	log = l
	return l
}

func getWriter(path, rotation string) zapcore.WriteSyncer {
	rl, err := getRotateLogs(path, rotation)
	if err != nil {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(rl)
}

func (l *Logger) IsDebug() bool {
	return l.debug
}

func (l *Logger) CloseSync() {
	if l.outLogger != nil {
		_ = l.outLogger.Sync()
	}
	if l.errLogger != nil {
		_ = l.errLogger.Sync()
	}
}

func (l *Logger) writer(level string) *zap.Logger {
	if level == TypeError {
		return l.errLogger
	}
	return l.outLogger
}

func (l *Logger) output(level string, msg string) {
	if level == TypeDebug && !l.debug {
		return
	}
	w := l.writer(level)
	if w == nil {
		return
	}
	now := time.Now()
	header := fmt.Sprintf(headerFormat, now.Format(time.DateTime), now.Nanosecond()/1000, fileLine(3, 2), level)
	w.Info(header + msg)
}

func (l *Logger) Info(arg ...interface{})  { l.output(TypeInfo, fmt.Sprint(arg...)) }
func (l *Logger) Warn(arg ...interface{})  { l.output(TypeWarn, fmt.Sprint(arg...)) }
func (l *Logger) Error(arg ...interface{}) { l.output(TypeError, fmt.Sprint(arg...)) }
func (l *Logger) Debug(arg ...interface{}) { l.output(TypeDebug, fmt.Sprint(arg...)) }

func (l *Logger) Infof(ft string, arg ...interface{})  { l.output(TypeInfo, fmt.Sprintf(ft, arg...)) }
func (l *Logger) Warnf(ft string, arg ...interface{})  { l.output(TypeWarn, fmt.Sprintf(ft, arg...)) }
func (l *Logger) Errorf(ft string, arg ...interface{}) { l.output(TypeError, fmt.Sprintf(ft, arg...)) }
func (l *Logger) Debugf(ft string, arg ...interface{}) { l.output(TypeDebug, fmt.Sprintf(ft, arg...)) }

func fileLine(skip int, length int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???:0"
	}
	ls := strings.Split(file, "/")
	if len(ls) > length {
		ls = ls[len(ls)-length:]
	}
	return fmt.Sprintf("%s:%d", strings.Join(ls, "/"), line)
}
