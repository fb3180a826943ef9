// Package config provides configuration loading, merging, and validation
// facilities for the dispatch server and its command-line client.
//
// Server configuration is assembled from multiple sources in the following
// priority order (earlier sources win, later ones only fill unset fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
