package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/chatkeeper/internal/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) register(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return
	}

	sess, err := a.sessions.Register(ctx, username, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Welcome, %s!\n", sess.Username)
}

func (a *App) login(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return
	}

	sess, err := a.sessions.Login(ctx, username, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Welcome back, %s!\n", sess.Username)
}

func (a *App) logout(ctx context.Context) {
	a.sessions.Logout(ctx)
	a.lastView = nil
	fmt.Println("Logged out.")
}

// profile updates the username and/or profile picture of the active
// account. Empty input leaves a field unchanged.
func (a *App) profile(ctx context.Context) {
	cur, ok := a.sessions.Current()
	if !ok {
		fmt.Println("Please log in first.")
		return
	}

	prompt := fmt.Sprintf("New username (empty to keep %q)", cur.Username)
	username, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return
	}
	picture, err := getSimpleText(a.reader, "Profile picture URL (empty to keep)", os.Stdout)
	if err != nil {
		return
	}

	patch := profilePatch(username, picture)
	sess, err := a.sessions.UpdateProfile(ctx, patch)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Profile updated: %s\n", sess.Username)
}

// profilePatch turns the entered values into a patch; empty input means
// "keep the current value".
func profilePatch(username, picture string) session.ProfilePatch {
	var patch session.ProfilePatch
	if username != "" {
		patch.Username = &username
	}
	if picture != "" {
		patch.ProfilePicture = &picture
	}
	return patch
}
