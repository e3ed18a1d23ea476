package kafka

import (
	"context"
	"log"
	"os"
	"strings"

	"econoshorts/pipeline"
)

// RenderRequest is the message shape for externally triggered renders.
type RenderRequest struct {
	Topic          string  `json:"topic"`
	Script         string  `json:"script"`
	TargetDuration float64 `json:"target_duration,omitempty"`
}

// NewJobConsumer wires a consumer that turns RenderRequest messages into
// pipeline runs. Broker list comes from KAFKA_BROKERS; unset disables the
// intake and returns nil.
func NewJobConsumer(runner *pipeline.Runner) (*Consumer, error) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil, nil
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "render-requests"
	}

	handler := &TypedMessageHandler[RenderRequest]{
		Validate: func(msg *RenderRequest) bool {
			return msg.Script != "" && msg.Topic != ""
		},
		Process: func(ctx context.Context, msg *RenderRequest) error {
			res := runner.RunManual(ctx, pipeline.ManualJob{
				Topic:          msg.Topic,
				ScriptText:     msg.Script,
				TargetDuration: msg.TargetDuration,
			})
			if !res.Success {
				log.Printf("[kafka] render request %q failed: %s", msg.Topic, res.Error)
			}
			// a failed render is not retried; the request was consumed
			return nil
		},
		AlwaysMark: true,
	}

	return NewConsumer(ConsumerConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   topic,
		GroupID: "econoshorts-renderer",
		Handler: handler,
	})
}
