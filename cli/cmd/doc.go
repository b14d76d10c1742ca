// Package cmd provides the check and fmt subcommands for working with
// demo scripts.
package cmd

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
var CacheIdentifier = "cache"
