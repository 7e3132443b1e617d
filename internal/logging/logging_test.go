package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusAdapter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	log := NewLogrusAdapterFromLogger(base).WithField(FieldIssuer, "chase")
	log.Info("parsed statement", F(FieldCount, 12))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed statement", entry["msg"])
	assert.Equal(t, "chase", entry[FieldIssuer])
	assert.EqualValues(t, 12, entry[FieldCount])
}

func TestNewLogrusAdapter_InvalidLevel(t *testing.T) {
	log := NewLogrusAdapter("loud", "text")
	adapter, ok := log.(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.InfoLevel, adapter.logger.GetLevel())
}

func TestMockLogger_SharesEntries(t *testing.T) {
	m := NewMockLogger()
	m.WithError(errors.New("boom")).WithField(FieldStrategy, "card").Warn("strategy failed")
	m.Debug("done")

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.Equal(t, []Field{{Key: FieldStrategy, Value: "card"}}, entries[0].Fields)
	assert.True(t, m.HasEntry("DEBUG", "done"))
}

func TestNewLogrusAdapterWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusAdapterWithOutput("warn", "json", &buf)

	log.Info("hidden")
	log.Warn("shown", F(FieldParser, "Generic"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "Generic", entry[FieldParser])
}
