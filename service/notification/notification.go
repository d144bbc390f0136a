// Package notification entrega eventos de reservas aos interessados:
// cada decisão sobre uma reserva passa pelo MQ e acaba numa notificação
// consultável pelo destinatário.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"makini-agent-backend/config"
	"makini-agent-backend/dao"

	"github.com/apache/rocketmq-client-go/v2"
	c "github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"github.com/avast/retry-go/v4"
)

const (
	TopicReservas = "topic_reservas"

	// Tags dos eventos de reserva.
	TagReservaCriada   = "tag_reserva_criada"
	TagReservaDecidida = "tag_reserva_decidida"

	consumeGroupReservas = "cg_reservas"

	sendMessageAttempts  = 3
	maxReconsumeTimes    = 5
	consumeGoroutineNums = 10
)

var (
	producerInstance rocketmq.Producer

	consumerReservas rocketmq.PushConsumer
)

// ReservaEvent é o payload publicado por cada alteração de reserva.
type ReservaEvent struct {
	ReservaID    uint   `json:"reserva_id"`
	AnuncioID    string `json:"anuncio_id"`
	Titulo       string `json:"titulo"`
	AgricultorID string `json:"agricultor_id"`
	FornecedorID string `json:"fornecedor_id"`
	DataInicio   string `json:"data_inicio"`
	DuracaoDias  int    `json:"duracao_dias"`
	Status       string `json:"status"`
}

// Enabled indica se o serviço foi configurado; sem name server o envio
// de eventos degrada para um aviso no log.
func Enabled() bool {
	return producerInstance != nil
}

func Init() error {
	if len(config.Cfg.MQ.NameServer) == 0 {
		slog.Warn("MQ name server not configured, reserva notifications disabled")
		return nil
	}

	// Nivela o logger do cliente RocketMQ (rlog)
	rlog.SetLogLevel("warn")

	var err error
	consumerReservas, err = rocketmq.NewPushConsumer(
		c.WithNameServer(config.Cfg.MQ.NameServer),
		c.WithGroupName(consumeGroupReservas),
		c.WithConsumerModel(c.Clustering),
		c.WithConsumeFromWhere(c.ConsumeFromLastOffset),
		c.WithMaxReconsumeTimes(maxReconsumeTimes),
		c.WithConsumeGoroutineNums(consumeGoroutineNums),
	)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %v", err)
	}

	producerInstance, err = rocketmq.NewProducer(
		producer.WithNameServer(config.Cfg.MQ.NameServer),
	)
	if err != nil {
		return fmt.Errorf("failed to create producer: %v", err)
	}

	return nil
}

func Run() error {
	if !Enabled() {
		return nil
	}

	selector := c.MessageSelector{
		Type:       c.TAG,
		Expression: TagReservaCriada + " || " + TagReservaDecidida,
	}

	err := consumerReservas.Subscribe(TopicReservas, selector, func(ctx context.Context, messages ...*primitive.MessageExt) (c.ConsumeResult, error) {
		for _, msg := range messages {
			if err := handleReservaEvent(msg); err != nil {
				slog.Error("Failed to process reserva event",
					"msg_id", msg.MsgId,
					"tag", msg.GetTags(),
					"err", err)
				return c.ConsumeRetryLater, err
			}
		}
		return c.ConsumeSuccess, nil
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %v", TopicReservas, err)
	}

	if err := producerInstance.Start(); err != nil {
		return fmt.Errorf("failed to start producer: %v", err)
	}

	if err := consumerReservas.Start(); err != nil {
		return fmt.Errorf("failed to start consumer: %v", err)
	}
	return nil
}

// PublishReservaEvent envia um evento de reserva com repetição e recuo
// exponencial.
func PublishReservaEvent(ctx context.Context, tag string, event ReservaEvent) error {
	if !Enabled() {
		slog.Warn("Notifications disabled, dropping reserva event",
			"reserva_id", event.ReservaID,
			"tag", tag)
		return nil
	}

	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reserva event: %v", err)
	}

	msg := primitive.NewMessage(TopicReservas, payloadJSON).WithTag(tag)

	err = retry.Do(
		func() error {
			_, err := producerInstance.SendSync(ctx, msg)
			return err
		},
		retry.Attempts(sendMessageAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying to send reserva event",
				"attempt", n+1,
				"reserva_id", event.ReservaID,
				"err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to send reserva event after retries: %v", err)
	}

	return nil
}

// handleReservaEvent materializa o evento numa notificação para quem
// deve agir: o fornecedor quando a reserva é criada, o agricultor quando
// é decidida.
func handleReservaEvent(msg *primitive.MessageExt) error {
	var event ReservaEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal reserva event: %v", err)
	}

	recipient := event.FornecedorID
	if msg.GetTags() == TagReservaDecidida {
		recipient = event.AgricultorID
	}

	if err := dao.CreateNotification(recipient, msg.GetTags(), msg.Body); err != nil {
		return fmt.Errorf("failed to persist notification: %v", err)
	}

	slog.Info("Reserva notification delivered",
		"reserva_id", event.ReservaID,
		"recipient", recipient,
		"tag", msg.GetTags())
	return nil
}

func Shutdown() {
	if producerInstance != nil {
		producerInstance.Shutdown()
	}
	if consumerReservas != nil {
		consumerReservas.Shutdown()
	}
}
