/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
)

var client *discordgo.Session

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	token := os.Getenv("PAIRBOT_TOKEN")
	if token == "" {
		log.Fatalf("pairbot.init: PAIRBOT_TOKEN is not set")
	}
	var err error
	client, err = discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("pairbot.init: failed to initialize discord client: %v", err)
	}
}

var pairCmd = &discordgo.ApplicationCommand{
	Name:        "pair",
	Description: "USCF Swiss pairing engine",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "predict",
			Description: "Predict next-round pairings for a rated event",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "event",
					Description: "USCF rated event id",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "tiebreak",
			Description: "Compute standings tiebreaks for a rated event",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "event",
					Description: "USCF rated event id",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "about",
			Description: "About this bot",
		},
	},
}

func main() {
	client.AddHandler(interactionHandler)
	client.Identify.Intents = discordgo.IntentsNone

	if err := client.Open(); err != nil {
		log.Fatalf("pairbot: failed to open gateway session: %v", err)
	}
	defer client.Close()

	if _, err := client.ApplicationCommandCreate(client.State.User.ID, "",
		pairCmd); err != nil {
		log.Fatalf("pairbot: failed to register /pair: %v", err)
	}

	log.Printf("pairbot: ready")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Printf("pairbot: shutting down")
}

func interactionHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != "pair" {
		return
	}
	resp := pairCmdHandler(i.Interaction)
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		log.Printf("pairbot: failed to respond: %v", err)
	}
}
