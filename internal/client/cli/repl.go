package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	ConfirmRegistration(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	ConfirmLogin(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Issue(ctx context.Context, args []string) error
	PublicKey(ctx context.Context, args []string) error
	PrivateKey(ctx context.Context, args []string) error
	Grant(ctx context.Context, args []string) error
	Members(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, confirm-register [code], login, confirm-login [code], pubkey <resource>, exit"
	helpLoggedIn  = "Available commands: issue <resource>, pubkey <resource>, privkey <resource>, grant <resource> <email>, " +
		"members <resource>, upload <resource> <file>, download <resource> <file>, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("kms %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx, args)
		case "confirm-register":
			cmdErr = a.ConfirmRegistration(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "confirm-login":
			cmdErr = a.ConfirmLogin(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "issue":
			cmdErr = a.Issue(ctx, args)
		case "pubkey":
			cmdErr = a.PublicKey(ctx, args)
		case "privkey":
			cmdErr = a.PrivateKey(ctx, args)
		case "grant":
			cmdErr = a.Grant(ctx, args)
		case "members":
			cmdErr = a.Members(ctx, args)
		case "upload":
			cmdErr = a.Upload(ctx, args)
		case "download":
			cmdErr = a.Download(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr.Error())
		}

		if err != nil {
			return
		}
	}
}
