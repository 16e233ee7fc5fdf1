package main

import (
	"log"

	"filegate/bot"
	corecmd "filegate/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return bot.Bootstrap(cfg)
		},
	})
	if err != nil {
		log.Fatalf("filegate: %v", err)
	}
}
