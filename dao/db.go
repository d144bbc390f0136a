package dao

import (
	"fmt"
	"log/slog"
	"time"

	"makini-agent-backend/config"
	"makini-agent-backend/model"

	"github.com/avast/retry-go/v4"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const connectAttempts = 5

// DB é a ligação global à base de dados.
var DB *gorm.DB

func Init() error {
	dsn := config.Cfg.DB.DSN()

	err := retry.Do(
		func() error {
			db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
			if err != nil {
				return err
			}
			DB = db
			return nil
		},
		retry.Attempts(connectAttempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying database connection",
				"attempt", n+1,
				"err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := DB.AutoMigrate(
		&model.Profile{},
		&model.Listing{},
		&model.Reserva{},
		&model.Notification{},
		&model.Session{},
		&model.Message{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %v", err)
	}

	return nil
}
