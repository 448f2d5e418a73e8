// Package config provides configuration loading, merging, and validation
// for the report-buddy server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. .env file (outside production) and environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The merged result is validated before it is returned from
// [GetStructuredConfig].
package config
