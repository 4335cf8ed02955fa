// Package cli provides the interactive GophVault command-line client.
//
// It wires configuration, local storage, the key store, the unlock gate and
// the credential store, then runs a REPL until the user exits. The vault is
// only built after the gate grants access.
//
// Commands:
//
//	help                        show available commands
//	list | l                    list credentials, newest first
//	show <id>                   show a credential with the secret masked
//	reveal <id>                 print the secret
//	add                         add a credential
//	edit <id>                   change a credential
//	delete <id>                 delete a credential
//	copy <id>                   copy the secret to the clipboard
//	generate [length] [classes] generate a password
//	strength                    score a password
//	exit | quit                 leave the program
//
// The REPL is started via App.Run, which blocks until the user exits.
package cli
