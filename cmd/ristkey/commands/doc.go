// Package commands defines the ristkey CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init         Create or rotate the local identity
//   - pubkey       Print the identity public key (base58, or hex with --hex)
//   - fingerprint  Print the identity fingerprint
//   - derive       Print the public key of a small scalar
//   - decode       Validate a base58 public key and print its hex encoding
//   - register     Publish your public key to a key directory
//   - lookup       Fetch, validate and cache a user's public key
//
// # Implementation
//
// The root command builds the dependency graph (stores, identity service,
// directory client) before any subcommand runs. derive and decode use the
// codec only and never touch the home directory's keys.
package commands
