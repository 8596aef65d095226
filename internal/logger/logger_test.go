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

package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "")
	assert.Equal(t, logrus.WarnLevel, levelFromEnv(logrus.WarnLevel))

	t.Setenv(EnvLevel, "debug")
	assert.Equal(t, logrus.DebugLevel, levelFromEnv(logrus.WarnLevel))

	t.Setenv(EnvLevel, "nonsense")
	assert.Equal(t, logrus.InfoLevel, levelFromEnv(logrus.InfoLevel))
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(logrus.InfoLevel)
	l.Out = &buf

	Component(l, "malloc").Info("acquired")
	assert.Contains(t, buf.String(), "malloc")
	assert.Contains(t, buf.String(), "acquired")

	// nil falls back to the package logger
	assert.Same(t, L, Component(nil, "x").Logger)
}
