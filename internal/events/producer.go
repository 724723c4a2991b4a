package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// CambioProducer publica los cambios en kafka para que todas las réplicas del
// panel los reciban, no solo la que atendió la escritura.
type CambioProducer struct {
	writer *kafka.Writer
}

func NewCambioProducer(brokers []string, topic string) *CambioProducer {
	return &CambioProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *CambioProducer) PublishCambio(ctx context.Context, tabla, accion, registroID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(Cambio{
		Tabla:      tabla,
		Accion:     accion,
		RegistroID: registroID,
		At:         time.Now(),
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(tabla),
		Value: value,
	})
}

func (p *CambioProducer) Close() error {
	return p.writer.Close()
}
