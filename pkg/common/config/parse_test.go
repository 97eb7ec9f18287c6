// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string  `yaml:"name" validate:"nonzero"`
	Weight  float64 `yaml:"weight" validate:"min=0,max=1"`
	Workers int     `yaml:"workers"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseNoFiles(t *testing.T) {
	var cfg testConfig
	assert.Error(t, Parse(&cfg))
}

func TestParseMissingFile(t *testing.T) {
	var cfg testConfig
	err := Parse(&cfg, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseMergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.yaml", "name: base\nweight: 0.2\nworkers: 3\n")
	override := writeFile(t, dir, "override.yaml", "weight: 0.7\n")

	cfg := testConfig{Workers: 1}
	require.NoError(t, Parse(&cfg, base, override))

	assert.Equal(t, "base", cfg.Name)
	assert.Equal(t, 0.7, cfg.Weight)
	assert.Equal(t, 3, cfg.Workers)
}

func TestParseKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "c.yaml", "name: only-name\n")

	cfg := testConfig{Weight: 0.5, Workers: 8}
	require.NoError(t, Parse(&cfg, file))

	assert.Equal(t, 0.5, cfg.Weight)
	assert.Equal(t, 8, cfg.Workers)
}

func TestParseValidationError(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.yaml", "name: x\nweight: 1.5\n")

	var cfg testConfig
	err := Parse(&cfg, file)
	require.Error(t, err)

	verr, ok := err.(ValidationError)
	require.True(t, ok)
	assert.Error(t, verr.ErrForField("Weight"))
	assert.NoError(t, verr.ErrForField("Name"))
	assert.Contains(t, verr.Error(), "Weight")
}

func TestParseBadYAML(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.yaml", "name: [unterminated\n")

	var cfg testConfig
	assert.Error(t, Parse(&cfg, file))
}
