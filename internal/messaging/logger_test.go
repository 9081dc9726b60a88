package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := messaging.NewZapLogger(zap.New(core))

	logger.Info("subscribed", watermill.LogFields{"topic": "url.created"})
	logger.With(watermill.LogFields{"consumer": "c1"}).Debug("read batch", nil)
	logger.Trace("tick", nil)
	logger.Error("ack failed", errors.New("boom"), watermill.LogFields{"id": 1})

	entries := logs.All()
	if assert.Len(t, entries, 4) {
		assert.Equal(t, "subscribed", entries[0].Message)
		assert.Equal(t, "url.created", entries[0].ContextMap()["topic"])
		assert.Equal(t, "c1", entries[1].ContextMap()["consumer"])
		assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
		assert.Equal(t, "boom", entries[3].ContextMap()["error"])
	}
}
