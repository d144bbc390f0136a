package main

import (
	"flag"
	"log/slog"
	"os"

	"makini-agent-backend/config"
	"makini-agent-backend/controller"
	"makini-agent-backend/dao"
	"makini-agent-backend/router"
	"makini-agent-backend/service/agent"
	"makini-agent-backend/service/media"
	"makini-agent-backend/service/notification"
	"makini-agent-backend/service/titling"
)

func main() {
	configPath := flag.String("config", "config.yaml", "caminho do ficheiro de configuração")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if err := dao.Init(); err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}

	driver, err := agent.NewDriverFromConfig(agent.NewGormStorage())
	if err != nil {
		slog.Error("Failed to init agent driver", "err", err)
		os.Exit(1)
	}
	controller.AgentRegistry = agent.NewRegistry(driver)

	if err := titling.Init(); err != nil {
		slog.Error("Failed to init titling service", "err", err)
		os.Exit(1)
	}
	if titling.Instance != nil {
		titling.Instance.Run()
	}

	if err := notification.Init(); err != nil {
		slog.Warn("Notification service disabled", "err", err)
	} else if notification.Enabled() {
		if err := notification.Run(); err != nil {
			slog.Warn("Notification service failed to start", "err", err)
		}
		defer notification.Shutdown()
	}

	if err := media.Init(); err != nil {
		slog.Warn("Media service disabled", "err", err)
	}

	r := router.Register()
	addr := config.Cfg.Server.Host + ":" + config.Cfg.Server.Port
	slog.Info("Server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
