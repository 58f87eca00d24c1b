// Package cli provides the linekeeper admin command-line client.
//
// With a command on the command line the client runs it once and exits:
//
//	linekeeper-cli login root@x.com
//	linekeeper-cli -t "$LINEKEEPER_TOKEN" update 4 staff classification=operator badge_code=445566
//
// Without one it starts a prompt where the token obtained by "login" or
// "badge" is kept for the rest of the session. See App.Run and App.Root.
package cli
