// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
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

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/containers/pkg/common/moerr"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 16, cfg.HashTable.InitialCapacity)
	require.Equal(t, 0.75, cfg.HashTable.GrowthFactor)
	require.Equal(t, 1.0, cfg.HashTable.MaxLoadFactor)
	require.Equal(t, 8, cfg.HashTable.MaxGrowRetries)
	require.Equal(t, 64, cfg.HashTable.ChainBuckets)
	require.Equal(t, IndexDivision, cfg.HashTable.Index)
	require.Equal(t, 2, cfg.Vector.InitialCapacity)
	require.Equal(t, 1.0, cfg.Vector.GrowthFactor)
	require.Equal(t, "console", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[hashtable]
initialCapacity = 32
growthFactor = 1.0
index = "multiplicative"

[vector]
growthFactor = 0.5

[log]
level = "debug"
format = "json"
`)
	require.NoError(t, err)
	require.Equal(t, 32, cfg.HashTable.InitialCapacity)
	require.Equal(t, 1.0, cfg.HashTable.GrowthFactor)
	require.Equal(t, IndexMultiplicative, cfg.HashTable.Index)
	require.Equal(t, 8, cfg.HashTable.MaxGrowRetries)
	require.Equal(t, 0.5, cfg.Vector.GrowthFactor)
	require.Equal(t, 2, cfg.Vector.InitialCapacity)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code uint16
	}{
		{"syntax", "[hashtable\n", moerr.ErrInvalidInput},
		{"unknown key", "[hashtable]\nloadFactor = 0.5\n", moerr.ErrBadConfig},
		{"negative capacity", "[hashtable]\ninitialCapacity = -1\n", moerr.ErrBadConfig},
		{"negative growth", "[hashtable]\ngrowthFactor = -0.5\n", moerr.ErrBadConfig},
		{"load above one", "[hashtable]\nmaxLoadFactor = 1.5\n", moerr.ErrBadConfig},
		{"bad index", "[hashtable]\nindex = \"fibonacci\"\n", moerr.ErrBadConfig},
		{"bad buckets", "[hashtable]\nchainBuckets = -4\n", moerr.ErrBadConfig},
		{"bad retries", "[hashtable]\nmaxGrowRetries = -1\n", moerr.ErrBadConfig},
		{"bad vector", "[vector]\ngrowthFactor = -1.0\n", moerr.ErrBadConfig},
		{"bad log format", "[log]\nformat = \"xml\"\n", moerr.ErrBadConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.doc)
			require.Nil(t, cfg)
			require.True(t, moerr.IsMoErrCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "containers.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hashtable]\nchainBuckets = 7\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.HashTable.ChainBuckets)
	require.Equal(t, 16, cfg.HashTable.InitialCapacity)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}
