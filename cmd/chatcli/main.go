// Package main provides a terminal client for the campus chat API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "Chat API address")
	token := flag.String("token", os.Getenv("CHAT_TOKEN"), "Bearer token (defaults to $CHAT_TOKEN)")
	category := flag.String("category", "", "Topic category sent with each message")
	flag.Parse()

	log.SetFlags(log.Ltime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := NewClient(*addr, *token)

	fmt.Printf("Connected to %s\n", *addr)
	fmt.Println("\nType a message and press Enter to send.")
	fmt.Println("Commands: /new, /sessions, /suggest, /export <pdf|csv> <file>, /quit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() || ctx.Err() != nil {
			fmt.Println()
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := runCommand(ctx, client, *category, input); quit {
				fmt.Println("Bye!")
				return
			}
			continue
		}

		result, err := client.Send(ctx, input, *category)
		if err != nil {
			log.Printf("Send error: %v", err)
			continue
		}
		fmt.Printf("\n%s\n\n", result.Response)
	}
}

func runCommand(ctx context.Context, client *Client, category, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit":
		return true
	case "/new":
		client.Reset()
		fmt.Println("Started a new session.")
	case "/sessions":
		sessions, err := client.Sessions(ctx)
		if err != nil {
			log.Printf("List error: %v", err)
			return false
		}
		for _, s := range sessions {
			marker := " "
			if s.SessionID == client.SessionID() {
				marker = "*"
			}
			fmt.Printf("%s %s  %-50s  %d messages\n", marker, s.SessionID, s.Title, s.MessageCount)
		}
	case "/suggest":
		questions, err := client.Suggestions(ctx, category)
		if err != nil {
			log.Printf("Suggestions error: %v", err)
			return false
		}
		for _, q := range questions {
			fmt.Println("  - " + q)
		}
	case "/export":
		if len(fields) != 3 {
			fmt.Println("usage: /export <pdf|csv> <file>")
			return false
		}
		data, err := client.Export(ctx, fields[1])
		if err != nil {
			log.Printf("Export error: %v", err)
			return false
		}
		if err := os.WriteFile(fields[2], data, 0o644); err != nil {
			log.Printf("Write error: %v", err)
			return false
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), fields[2])
	default:
		fmt.Printf("unknown command %s\n", fields[0])
	}
	return false
}
