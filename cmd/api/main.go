package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"taskManager/internal/app"
	"taskManager/internal/config"
)

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "ошибка конфигурации:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка инициализации:", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка сервера:", err)
		os.Exit(1)
	}
}
