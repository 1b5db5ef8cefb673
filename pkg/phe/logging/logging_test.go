package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/phe-go/pkg/phe/logging"
)

func TestSlogLoggerWritesAttributes(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := logging.New(slog.New(handler)).With("scheme", "paillier")

	logger.Debug(context.Background(), "key generated", "bits", 2048, logging.Redacted("lambda"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "key generated", record["msg"])
	assert.Equal(t, "paillier", record["scheme"])
	assert.EqualValues(t, 2048, record["bits"])
	assert.Equal(t, logging.Placeholder(), record["lambda"])
}

func TestDiscardDropsRecords(t *testing.T) {
	logger := logging.Discard()
	// Nothing to observe; this only has to not panic.
	logger.Error(context.Background(), "dropped", "k", "v")
	logger.With("a", 1).Info(context.Background(), "dropped")
}

func TestOrDefault(t *testing.T) {
	assert.NotNil(t, logging.OrDefault(nil))

	l := logging.Discard()
	assert.Same(t, l, logging.OrDefault(l))
}

func TestLogrusAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := logging.NewLogrus(logrus.NewEntry(base)).With("scheme", "gm")
	logger.Info(context.Background(), "encrypt", "trial", 3, logging.Redacted("bit"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "encrypt", record["msg"])
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "gm", record["scheme"])
	assert.EqualValues(t, 3, record["trial"])
	assert.Equal(t, logging.Placeholder(), record["bit"])
}

func TestLogrusAdapterOddArguments(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	logging.NewLogrus(logrus.NewEntry(base)).Warn(context.Background(), "odd", "dangling")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "dangling", record["!BADKEY"])
}
