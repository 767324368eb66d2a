package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
		Multiplier:  1.0,
	}
}

func TestRetry_SucceedsAfterTransientFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`{"ok": true}`)},
	)
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Generate(context.Background(), Request{User: "hola"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != `{"ok": true}` {
		t.Errorf("Content = %s", resp.Content)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("calls = %d, want 2", len(mock.Calls))
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithRetry(mock, fastRetry(2))

	_, err := p.Generate(context.Background(), Request{User: "hola"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("calls = %d, want 2", len(mock.Calls))
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{User: "hola"})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Errorf("err = %v, want ErrInvalidResponse after single retry", err)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("calls = %d, want 2 (one retry for invalid response)", len(mock.Calls))
	}
}

func TestRetry_ContextCancelNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.Canceled})
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{User: "hola"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("calls = %d, want 1", len(mock.Calls))
	}
}
