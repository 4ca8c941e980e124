// Package cmd provides the command-line interface for assetns.
//
// # Available Commands
//
//   - generate: walk asset modules and write their generated artifacts
//   - tree: print the namespace tree of a module
//   - watch: regenerate modules when their files change
//   - validate: check the configuration and compile filter patterns
//   - init: write a starter .assetns.yml
//   - config show: print the effective configuration
//   - version: print build information
//
// # Configuration
//
// Configuration is read from several sources, highest priority first:
//
//  1. Command-line flags (--config, --log-level, ...)
//  2. ASSETNS_CONFIG_FILE environment variable - custom config file path
//  3. Individual environment variables (ASSETNS_LOG_LEVEL, ...)
//  4. Configuration file (.assetns.yml in the working directory)
//
// A --config path ending in .hcl is read as a module file and merged into
// the modules list.
//
// # Examples
//
//	// Generate a Go file embedding ./static, images as []byte
//	assetns generate --base static --include 'lang/*' --binary-include 'images/*'
//
//	// Print a JSON manifest instead of writing it
//	assetns generate --base static --format json --stdout
//
//	// Regenerate every configured module on change
//	assetns watch
package cmd
