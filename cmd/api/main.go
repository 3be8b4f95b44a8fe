package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/focusboard/cmd/api/commands"
)

// @title Focusboard API
// @version 1.0
// @description Personal todo board with gamified analytics and an AI planning assistant

// @contact.name Focusboard Support
// @contact.url https://github.com/taskmaster/focusboard

// @license.name MIT
// @license.url https://github.com/taskmaster/focusboard/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:          "focusboard",
		Short:        "Focusboard API Server",
		Long:         `Focusboard keeps a personal todo list, turns completed work into XP, levels and streaks, and asks a generative model for planning help.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
