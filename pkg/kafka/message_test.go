package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileDrop(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		msg := &IncomingMessage{
			Value: []byte(`{"batch_id":"b-1","files":[{"name":"Persona.csv","content":"id;Nombre\n1;Ana"}]}`),
		}

		require.NoError(t, msg.ParseFileDrop())
		assert.Equal(t, "b-1", msg.GetBatchID())
		assert.Equal(t, map[string]string{"Persona.csv": "id;Nombre\n1;Ana"}, msg.FileMap())
	})

	t.Run("invalid json", func(t *testing.T) {
		msg := &IncomingMessage{Value: []byte("not json")}
		assert.Error(t, msg.ParseFileDrop())
		assert.Nil(t, msg.FileMap())
	})

	t.Run("batch id falls back to the header", func(t *testing.T) {
		msg := &IncomingMessage{
			Value:   []byte(`{"files":[]}`),
			Headers: map[string]string{"batch_id": "from-header"},
		}
		require.NoError(t, msg.ParseFileDrop())
		assert.Equal(t, "from-header", msg.GetBatchID())
	})
}
