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

package auth

import (
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type KeysTestSuite struct {
	suite.Suite
}

func TestKeysSuite(t *testing.T) {
	suite.Run(t, new(KeysTestSuite))
}

func (suite *KeysTestSuite) pkcs1PEM() []byte {
	key := testRSAKey(suite.T())
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func (suite *KeysTestSuite) jwkDocument() []byte {
	jwkKey, err := jwk.FromRaw(testRSAKey(suite.T()))
	assert.NoError(suite.T(), err)
	data, err := json.Marshal(jwkKey)
	assert.NoError(suite.T(), err)
	return data
}

func (suite *KeysTestSuite) TestParsePKCS1PEM() {
	key, err := ParseRSAPrivateKeyPEM(suite.pkcs1PEM())
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), key)
	assert.NoError(suite.T(), key.Validate())
}

func (suite *KeysTestSuite) TestParsePKCS8PEM() {
	der, err := x509.MarshalPKCS8PrivateKey(testRSAKey(suite.T()))
	assert.NoError(suite.T(), err)
	data := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	key, err := ParseRSAPrivateKeyPEM(data)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), key)
}

func (suite *KeysTestSuite) TestParseJWK() {
	key, err := ParseRSAPrivateKeyJWK(suite.jwkDocument())
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), key)
	assert.NoError(suite.T(), key.Validate())
}

func (suite *KeysTestSuite) TestLoadDetectsFormatFromContent() {
	dir := suite.T().TempDir()

	pemPath := filepath.Join(dir, "key.pem")
	assert.NoError(suite.T(), os.WriteFile(pemPath, suite.pkcs1PEM(), 0600))
	key, err := LoadRSAPrivateKey(pemPath)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), key)

	jwkPath := filepath.Join(dir, "key.jwk")
	assert.NoError(suite.T(), os.WriteFile(jwkPath, suite.jwkDocument(), 0600))
	key, err = LoadRSAPrivateKey(jwkPath)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), key)
}

func (suite *KeysTestSuite) TestGarbageInputFails() {
	_, err := ParseRSAPrivateKeyPEM([]byte("not a key"))
	assert.ErrorIs(suite.T(), err, &ErrorInvalidRSAKey)

	_, err = ParseRSAPrivateKeyJWK([]byte("{}"))
	assert.Error(suite.T(), err)

	_, err = LoadRSAPrivateKey(filepath.Join(suite.T().TempDir(), "absent"))
	assert.ErrorIs(suite.T(), err, &ErrorInvalidRSAKey)
}
