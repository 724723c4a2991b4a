package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CambioConsumer lee el topic de cambios y los reparte al hub local.
type CambioConsumer struct {
	reader *kafka.Reader
	hub    *Hub
	log    *zap.Logger
}

func NewCambioConsumer(brokers []string, groupID, topic string, hub *Hub, log *zap.Logger) *CambioConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &CambioConsumer{reader: r, hub: hub, log: log}
}

func (c *CambioConsumer) Run(ctx context.Context) error {
	c.log.Info("consumer de cambios iniciado")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("leer mensaje de cambios", zap.Error(err))
			continue
		}
		var cambio Cambio
		if err := json.Unmarshal(m.Value, &cambio); err != nil {
			c.log.Error("decodificar cambio", zap.ByteString("value", m.Value), zap.Error(err))
			continue
		}
		if cambio.Tabla == "" {
			c.log.Warn("cambio sin tabla, descartado")
			continue
		}
		c.hub.Broadcast(cambio)
	}
}

func (c *CambioConsumer) Close() error { return c.reader.Close() }
