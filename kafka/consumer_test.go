package kafka

import (
	"context"
	"errors"
	"testing"
)

type testPayload struct {
	Topic  string `json:"topic"`
	Script string `json:"script"`
}

func TestTypedHandlerProcessesValidMessage(t *testing.T) {
	var got *testPayload
	h := &TypedMessageHandler[testPayload]{
		Process: func(ctx context.Context, msg *testPayload) error {
			got = msg
			return nil
		},
	}
	mark, err := h.HandleMessage(context.Background(), []byte(`{"topic":"금리","script":"대본."}`))
	if err != nil || !mark {
		t.Fatalf("mark=%v err=%v", mark, err)
	}
	if got == nil || got.Topic != "금리" {
		t.Errorf("payload not delivered: %+v", got)
	}
}

func TestTypedHandlerMarksInvalidJSON(t *testing.T) {
	h := &TypedMessageHandler[testPayload]{
		Process:    func(ctx context.Context, msg *testPayload) error { return nil },
		AlwaysMark: true,
	}
	mark, err := h.HandleMessage(context.Background(), []byte("not json"))
	if err != nil {
		t.Fatalf("invalid JSON should not error: %v", err)
	}
	if !mark {
		t.Error("invalid message should be marked to avoid poison loops")
	}
}

func TestTypedHandlerValidationGate(t *testing.T) {
	processed := false
	h := &TypedMessageHandler[testPayload]{
		Validate: func(msg *testPayload) bool { return msg.Script != "" },
		Process: func(ctx context.Context, msg *testPayload) error {
			processed = true
			return nil
		},
	}
	mark, _ := h.HandleMessage(context.Background(), []byte(`{"topic":"금리"}`))
	if processed {
		t.Error("invalid message reached Process")
	}
	if mark {
		t.Error("message marked despite AlwaysMark=false")
	}
}

func TestTypedHandlerProcessErrorLeavesUnmarked(t *testing.T) {
	h := &TypedMessageHandler[testPayload]{
		Process: func(ctx context.Context, msg *testPayload) error {
			return errors.New("transient")
		},
	}
	mark, err := h.HandleMessage(context.Background(), []byte(`{"topic":"금리","script":"대본."}`))
	if err == nil {
		t.Fatal("expected process error")
	}
	if mark {
		t.Error("failed message must stay unmarked for retry")
	}
}
