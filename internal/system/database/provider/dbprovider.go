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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/gdata-go-client/config"
	"github.com/google/gdata-go-client/internal/system/database/client"
	"github.com/google/gdata-go-client/internal/system/database/model"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// dbConfig represents the resolved driver configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	// GetDBClient returns the client for the configured data source.
	// The client manages its own connection pool and is shared between calls.
	GetDBClient() (client.DBClientInterface, error)
	// Close closes the underlying connection pool.
	Close() error
}

// DBProvider is the implementation of DBProviderInterface. Each provider owns
// one data source; construct one per store rather than sharing a global.
type DBProvider struct {
	dataSource config.DataSource
	client     client.DBClientInterface
	mutex      sync.RWMutex
}

// NewDBProvider creates a provider for the given data source. The connection
// is opened lazily on the first GetDBClient call.
func NewDBProvider(dataSource config.DataSource) DBProviderInterface {
	return &DBProvider{
		dataSource: dataSource,
	}
}

// GetDBClient returns the database client, opening the connection pool on
// first use.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {
	d.mutex.RLock()
	if d.client != nil {
		dbClient := d.client
		d.mutex.RUnlock()
		return dbClient, nil
	}
	d.mutex.RUnlock()

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.client != nil {
		return d.client, nil
	}
	if err := d.initializeClient(); err != nil {
		return nil, err
	}
	return d.client, nil
}

// Close closes the database connections.
func (d *DBProvider) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.client == nil {
		return nil
	}
	err := d.client.Close()
	d.client = nil
	return err
}

// initializeClient opens the connection pool and assigns the client.
func (d *DBProvider) initializeClient() error {
	dbConfig, err := d.getDBConfig()
	if err != nil {
		return err
	}
	dbName := d.dataSource.Name

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	// Configure connection pool using values from configuration
	db.SetMaxOpenConns(d.dataSource.MaxOpenConns)
	db.SetMaxIdleConns(d.dataSource.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(d.dataSource.ConnMaxLifetime) * time.Second)

	// Test the database connection.
	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database %s: %w (close error: %w)", dbName, err, closeErr)
		}
		return fmt.Errorf("failed to ping database %s: %w", dbName, err)
	}

	// Enable foreign key constraints for SQLite databases
	if dbConfig.driverName == dataSourceTypeSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				return fmt.Errorf("failed to enable foreign key constraints for %s: %w (close error: %w)",
					dbName, err, closeErr)
			}
			return fmt.Errorf("failed to enable foreign key constraints for %s: %w", dbName, err)
		}
	}

	d.client = client.NewDBClient(model.NewDB(db), dbConfig.driverName)
	return nil
}

// getDBConfig resolves the driver name and DSN from the data source settings.
func (d *DBProvider) getDBConfig() (dbConfig, error) {
	switch d.dataSource.Type {
	case dataSourceTypePostgres:
		return dbConfig{
			driverName: dataSourceTypePostgres,
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				d.dataSource.Hostname, d.dataSource.Port, d.dataSource.Username,
				d.dataSource.Password, d.dataSource.Name, d.dataSource.SSLMode),
		}, nil
	case dataSourceTypeSQLite:
		options := d.dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		return dbConfig{
			driverName: dataSourceTypeSQLite,
			dsn:        d.dataSource.Path + options,
		}, nil
	default:
		return dbConfig{}, fmt.Errorf("unsupported data source type: %s", d.dataSource.Type)
	}
}
