package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlexStringsScalar(t *testing.T) {
	var payload struct {
		ScopeIDs FlexStrings `json:"scopeIds"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"scopeIds":"cse"}`), &payload))
	require.Equal(t, FlexStrings{"cse"}, payload.ScopeIDs)
}

func TestFlexStringsArray(t *testing.T) {
	var scopes FlexStrings
	require.NoError(t, json.Unmarshal([]byte(`["cse","ece"]`), &scopes))
	require.Equal(t, FlexStrings{"cse", "ece"}, scopes)
}

func TestFlexStringsNullAndEmpty(t *testing.T) {
	var scopes FlexStrings
	require.NoError(t, json.Unmarshal([]byte(`null`), &scopes))
	require.Nil(t, scopes)

	require.NoError(t, json.Unmarshal([]byte(`""`), &scopes))
	require.Nil(t, scopes)
}

func TestFlexStringsRejectsObject(t *testing.T) {
	var scopes FlexStrings
	require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &scopes))
}
