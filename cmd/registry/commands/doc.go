// Package commands defines the registry CLI.
//
// Commands
//
//   - networks   List the built-in network presets
//   - keygen     Generate a wallet key
//   - count      Print the number of registered users
//   - exists     Report whether an address is registered
//   - profile    Print the profile of an address, or of the connected wallet
//   - create     Create an account for the connected wallet and wait for confirmation
//
// # Configuration
//
// The root command merges, in increasing precedence, the --config JSON file,
// REGISTRY_* environment variables and command-line flags before any
// subcommand runs. Wallet keys are read from REGISTRY_WALLET_KEY or prompted
// for without echo; --signer-url delegates signing to a remote signer instead.
package commands
