/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) writeConfigFile(content string) string {
	path := filepath.Join(suite.T().TempDir(), "gdata.yaml")
	assert.NoError(suite.T(), os.WriteFile(path, []byte(content), 0600))
	return path
}

func (suite *ConfigTestSuite) TestLoadWithoutFileUsesDefaults() {
	cfg, err := Load("")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 30, cfg.HTTPTimeout)
	assert.Equal(suite.T(), 5, cfg.MaxRedirects)
	assert.Equal(suite.T(), 60, cfg.ExpirySkew)
	assert.Equal(suite.T(), int64(262144), cfg.ChunkSize)
	assert.Equal(suite.T(), StoreTypeMemory, cfg.Store.Type)
}

func (suite *ConfigTestSuite) TestLoadYAMLOverridesDefaults() {
	path := suite.writeConfigFile(`
max_redirects: 3
chunk_size: 1048576
store:
  type: bolt
  bolt_path: /var/lib/gdata/tokens.db
  cache:
    size: 50
    ttl: 300
`)
	cfg, err := Load(path)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, cfg.MaxRedirects)
	assert.Equal(suite.T(), int64(1048576), cfg.ChunkSize)
	assert.Equal(suite.T(), StoreTypeBolt, cfg.Store.Type)
	assert.Equal(suite.T(), "/var/lib/gdata/tokens.db", cfg.Store.BoltPath)
	assert.Equal(suite.T(), 50, cfg.Store.Cache.Size)
	// Untouched settings keep their defaults.
	assert.Equal(suite.T(), 30, cfg.HTTPTimeout)
}

func (suite *ConfigTestSuite) TestEnvironmentOverridesYAML() {
	suite.T().Setenv("GDATA_MAX_REDIRECTS", "8")
	suite.T().Setenv("GDATA_STORE_TYPE", "database")
	suite.T().Setenv("GDATA_STORE_DATASOURCE_TYPE", "postgres")
	suite.T().Setenv("GDATA_STORE_DATASOURCE_PASSWORD", "hunter2")

	path := suite.writeConfigFile("max_redirects: 3\n")
	cfg, err := Load(path)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 8, cfg.MaxRedirects)
	assert.Equal(suite.T(), StoreTypeDatabase, cfg.Store.Type)
	assert.Equal(suite.T(), "postgres", cfg.Store.DataSource.Type)
	assert.Equal(suite.T(), "hunter2", cfg.Store.DataSource.Password)
}

func (suite *ConfigTestSuite) TestLoadMissingFileFails() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "absent.yaml"))
	assert.Error(suite.T(), err)
}

func (suite *ConfigTestSuite) TestLoadMalformedYAMLFails() {
	path := suite.writeConfigFile("max_redirects: [not an int\n")
	_, err := Load(path)
	assert.Error(suite.T(), err)
}
