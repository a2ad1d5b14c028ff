package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordResetTemplateUsesEveryParameter(t *testing.T) {
	params := map[string]string{}
	require.Nil(t, json.Unmarshal([]byte(testTemplateData), &params))

	template := passwordResetTemplate("proposalai-password-reset")

	require.Equal(t, "proposalai-password-reset", *template.TemplateName)
	for key := range params {
		require.Contains(t, *template.HtmlPart, "{{"+key+"}}")
		require.Contains(t, *template.TextPart, "{{"+key+"}}")
	}
	require.Len(t, params, 3)
}
