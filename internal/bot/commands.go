package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/bitesys/registrar/internal/events"
)

const (
	publicHelp = `Available commands:
/events - Show the fest lineup
/help - Show this message`

	adminHelp = `Available commands:
/events - Show the fest lineup
/stats - Registration counts per event
/recent <event> - Latest registrations for an event
/help - Show this message

Examples:
/recent bITeWARS
/recent BOARDROOM BATTLEGROUND`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routePublicCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":  b.handleStart,
		"events": b.handleEvents,
		"help":   b.handleHelp,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"stats":  b.handleStats,
		"recent": b.handleRecent,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routePublicCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	var text string
	if b.admins[msg.From.ID] {
		text = adminHelp
	} else {
		text = publicHelp
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Send /help for the list of commands.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	text := "Hi! I track fest registrations.\n\n"
	if b.admins[msg.From.ID] {
		text += "You are an organizer. Use /help for the command list."
	} else {
		text += "Use /events to see the lineup."
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleEvents(msg *tgbotapi.Message) error {
	var out strings.Builder
	out.WriteString("Fest lineup:\n\n")
	for _, d := range events.All() {
		line := "🎯 " + d.Name
		switch {
		case d.External:
			line += " (external registration)"
		case d.IsFixedTeam():
			line += " (team of 3)"
		case d.IsTeamEvent():
			line += " (team of up to 3)"
		}
		if d.Open {
			line += " [open]"
		}
		out.WriteString(line + "\n")
	}

	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) handleStats(msg *tgbotapi.Message) error {
	counts, err := b.store.CountByEvent()
	if err != nil {
		return fmt.Errorf("failed to fetch counts: %v", err)
	}

	if len(counts) == 0 {
		return b.sendMessage(msg.Chat.ID, "No registrations yet")
	}

	var out strings.Builder
	out.WriteString("Registrations per event:\n\n")
	var total int64
	for _, d := range events.Registerable() {
		n := counts[d.Name]
		total += n
		out.WriteString(fmt.Sprintf("%s: %d\n", d.Name, n))
	}
	out.WriteString(fmt.Sprintf("\nTotal: %d", total))

	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) handleRecent(msg *tgbotapi.Message) error {
	event := strings.TrimSpace(msg.CommandArguments())
	if event == "" {
		return b.sendMessage(msg.Chat.ID, "Usage: /recent <event>")
	}

	if _, ok := events.Find(event); !ok {
		return fmt.Errorf("unknown event: %s", event)
	}

	recs, err := b.store.ListRegistrations(event)
	if err != nil {
		return fmt.Errorf("failed to fetch registrations: %v", err)
	}

	if len(recs) == 0 {
		return b.sendMessage(msg.Chat.ID, "No registrations yet for "+event)
	}

	// Newest last; show the tail.
	const maxShown = 10
	if len(recs) > maxShown {
		recs = recs[len(recs)-maxShown:]
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Latest registrations for %s:\n\n", event))
	for _, r := range recs {
		out.WriteString(fmt.Sprintf("👤 %s %s (%s)\n", r.FirstName, r.LastName, r.Email))
		if r.TeamName != "" {
			out.WriteString(fmt.Sprintf("   Team: %s\n", r.TeamName))
		}
		out.WriteString(fmt.Sprintf("   At: %s\n\n", r.Timestamp))
	}

	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}
