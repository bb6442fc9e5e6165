// Package commands defines the parley CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init         Create the local identity (optionally recoverable)
//   - restore      Rebuild the identity from a recovery phrase
//   - register     Publish your public key to the relay directory
//   - lookup       Fetch a peer's directory entry
//   - send         Seal and send a message to a peer
//   - recv         Fetch, open and acknowledge queued messages
//   - history      Show the local archive of sent messages
//   - fingerprint  Print your fingerprint and contact code
//   - passwd       Change the vault PIN
//
// # Implementation
//
// The root command builds the dependency graph (stores, services, relay
// client) before any subcommand runs, so handlers share one app context.
// Commands that need key material unlock the vault for the duration of the
// run and wipe the secret before exiting.
package commands
