// Package cli provides the interactive gophkms command-line client.
//
// It wires configuration, the broker client and an interactive REPL. A
// background watcher pings the server and flips the prompt between online
// and offline. The session token lives only in this process; exiting or
// logging out drops it.
//
// Commands:
//   - register, confirm-register [code]
//   - login, confirm-login [code], logout
//   - issue <resource>, pubkey <resource>, privkey <resource>
//   - grant <resource> <email>, members <resource>
//   - upload <resource> <file>, download <resource> <file>
//   - help, exit
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
