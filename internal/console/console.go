// Package console runs the bot conversation for a single local user over an
// io.Reader/io.Writer pair, mainly for development without a Telegram token.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"drivetest-bot/internal/exam"
)

type Config struct {
	UserID string
	Name   string
}

// Run prints the opening menu, then feeds each input line to the controller
// until EOF or "exit".
func Run(ctx context.Context, in io.Reader, out io.Writer, controller *exam.SessionController, cfg Config) error {
	userID := strings.TrimSpace(cfg.UserID)
	if userID == "" {
		return errors.New("user id is required")
	}
	name := cfg.Name
	if name == "" {
		name = "Local User"
	}

	printMessages(out, controller.Greeting())

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return nil
		}

		printMessages(out, controller.HandleMessage(ctx, userID, name, line))
	}
}

func printMessages(out io.Writer, messages []exam.Message) {
	for _, message := range messages {
		if message.ImageURL != "" {
			fmt.Fprintf(out, "[image] %s\n", message.ImageURL)
		}
		if message.Text != "" {
			fmt.Fprintln(out, message.Text)
		}
	}
}
