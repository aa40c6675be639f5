package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if cur, ok := a.sessions.Current(); ok {
		s = cur.Username
	}
	if peer, ok := a.controller.Peer(); ok {
		s = s + " -> " + peer.Username
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the read–eval–print loop. It reads a line, parses the first
// token as the command and dispatches to methods on App. The loop exits on
// EOF or when the user types "exit" or "quit".
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to chatkeeper (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("chat %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: users [filter], open <username>, send [text], (l)ist, edit <n>, cancel, delete <n>, profile, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "profile":
			a.profile(ctx)
		case "users":
			a.users(ctx, strings.Join(args, " "))
		case "open":
			if len(args) == 0 {
				fmt.Println("Usage: open <username>")
				continue
			}
			a.open(ctx, args[0])
		case "send":
			a.send(ctx, strings.Join(args, " "))
		case "l", "list":
			a.list(ctx)
		case "edit":
			if len(args) == 0 {
				fmt.Println("Usage: edit <n>")
				continue
			}
			a.edit(ctx, args[0])
		case "cancel":
			a.controller.CancelEdit()
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <n>")
				continue
			}
			a.delete(ctx, args[0])
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
