/*
 * Copyright 2026 CloudWeGo Authors
 *
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

// Package logger holds the logger shared by heapx packages.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// EnvLevel names the environment variable that overrides the default level,
// e.g. HEAPX_LOG_LEVEL=debug.
const EnvLevel = "HEAPX_LOG_LEVEL"

// L is the default logger. Libraries only log warnings unless EnvLevel says otherwise.
var L = New(levelFromEnv(logrus.WarnLevel))

// New returns a logger writing to stderr with the heapx text format.
func New(level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out:   os.Stderr,
		Level: level,
		Hooks: make(logrus.LevelHooks),
		Formatter: &prefixed.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			ForceFormatting: true,
		},
	}
}

// Component returns an entry tagged with the component name, rendered as the
// line prefix by the formatter.
func Component(l *logrus.Logger, name string) *logrus.Entry {
	if l == nil {
		l = L
	}
	return l.WithField("prefix", name)
}

func levelFromEnv(def logrus.Level) logrus.Level {
	s := os.Getenv(EnvLevel)
	if s == "" {
		return def
	}
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return def
	}
	return lvl
}
