package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depotstat/pkg/schema"
)

func TestDetectKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want schema.Kind
	}{
		{name: "scene", data: `{"SceneName": "x", "SectionsInScene": []}`, want: schema.KindScene},
		{name: "scene name only", data: `{"SceneName": "x"}`, want: schema.KindScene},
		{name: "quest nodes", data: `{"questphases": {}}`, want: schema.KindQuestNode},
		{name: "bom", data: "\xEF\xBB\xBF" + `{"questphases": {}}`, want: schema.KindQuestNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := schema.DetectKind([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := schema.DetectKind([]byte(`{"other": 1}`))
	require.ErrorIs(t, err, schema.ErrUnknownKind)

	_, err = schema.DetectKind([]byte(`[]`))
	require.ErrorIs(t, err, schema.ErrUnknownKind)

	_, err = schema.DetectKind([]byte(`{`))
	require.ErrorIs(t, err, schema.ErrInvalidJSON)
}

func TestValidate_Scene(t *testing.T) {
	t.Parallel()

	valid := `{"SceneName": null, "SectionsInScene": [
		{"IsChoiceSection": true, "LinesInSection": [{"Speaker": "Judy"}, {}]}
	]}`

	res, err := schema.Validate("", []byte(valid))
	require.NoError(t, err)
	assert.Equal(t, schema.KindScene, res.Kind)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Issues)

	invalid := `{"SceneName": 3, "SectionsInScene": [{"IsChoiceSection": "yes"}]}`

	res, err = schema.Validate(schema.KindScene, []byte(invalid))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Len(t, res.Issues, 2)
}

func TestValidate_QuestNode(t *testing.T) {
	t.Parallel()

	res, err := schema.Validate(schema.KindQuestNode, []byte(`{"questphases": {"p": [{"id": 1, "name": "Hub"}]}}`))
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = schema.Validate(schema.KindQuestNode, []byte(`{"questphases": {"p": "nodes"}}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Issues)
	assert.Contains(t, res.Issues[0].Field, "questphases")

	res, err = schema.Validate(schema.KindQuestNode, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := schema.ParseKind(" Scene ")
	require.NoError(t, err)
	assert.Equal(t, schema.KindScene, k)

	k, err = schema.ParseKind("")
	require.NoError(t, err)
	assert.Empty(t, k)

	_, err = schema.ParseKind("xml")
	require.ErrorIs(t, err, schema.ErrUnknownKind)

	for _, kind := range schema.Kinds {
		doc, schemaErr := schema.Schema(kind)
		require.NoError(t, schemaErr)
		assert.NotEmpty(t, doc)
	}
}
