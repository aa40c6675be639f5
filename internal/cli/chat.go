package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/chatkeeper/internal/models"
)

func (a *App) users(ctx context.Context, filter string) {
	peers, err := a.sessions.Peers(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	shown := 0
	for _, p := range peers {
		if filter != "" && !strings.Contains(strings.ToLower(p.Username), strings.ToLower(filter)) {
			continue
		}
		fmt.Println(p.Username)
		shown++
	}
	if shown == 0 {
		fmt.Println("No users found.")
	}
}

func (a *App) open(ctx context.Context, username string) {
	peer, err := a.sessions.Lookup(ctx, username)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	view, err := a.controller.SelectPeer(ctx, peer)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	a.render(view)
}

func (a *App) send(ctx context.Context, text string) {
	if text == "" {
		line, err := getSimpleText(a.reader, "Message", os.Stdout)
		if err != nil {
			return
		}
		text = line
	}

	view, err := a.controller.Send(ctx, text)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	a.render(view)
}

func (a *App) list(ctx context.Context) {
	a.render(a.controller.View(ctx))
}

func (a *App) edit(ctx context.Context, arg string) {
	msg, ok := a.ownMessageAt(arg)
	if !ok {
		return
	}

	a.controller.RequestEdit(msg.ID)
	text, err := getSimpleText(a.reader, "New text (empty to keep)", os.Stdout)
	if err != nil {
		a.controller.CancelEdit()
		return
	}

	view, err := a.controller.SaveEdit(ctx, text)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	a.render(view)
}

func (a *App) delete(ctx context.Context, arg string) {
	msg, ok := a.ownMessageAt(arg)
	if !ok {
		return
	}

	view, err := a.controller.DeleteMessage(ctx, msg.ID)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	a.render(view)
}

// ownMessageAt resolves a 1-based index from the last rendered view and
// checks the message was authored by the active session; edit and delete
// controls exist only on one's own messages.
func (a *App) ownMessageAt(arg string) (models.Message, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.lastView) {
		fmt.Println("No such message; run 'list' and use its numbering.")
		return models.Message{}, false
	}
	msg := a.lastView[n-1]

	cur, ok := a.sessions.Current()
	if !ok || msg.SenderID != cur.ID {
		fmt.Println("You can only change your own messages.")
		return models.Message{}, false
	}
	return msg, true
}

func (a *App) render(view []models.Message) {
	a.lastView = view
	if len(view) == 0 {
		fmt.Println("(no messages)")
		return
	}

	cur, _ := a.sessions.Current()
	peer, _ := a.controller.Peer()
	for i, m := range view {
		name := peer.Username
		if m.SenderID == cur.ID {
			name = cur.Username
		}
		suffix := ""
		if m.Edited {
			suffix = " (edited)"
		}
		fmt.Printf("%3d  [%s] %s: %s%s\n", i+1, shortTime(m.Timestamp), name, m.Content, suffix)
	}
}

func shortTime(iso string) string {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("15:04")
}
