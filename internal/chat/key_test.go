package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversationKey_Symmetric(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want string
	}{
		{"already ordered", "user_1_aaa", "user_2_bbb", "user_1_aaa_user_2_bbb"},
		{"reversed", "user_2_bbb", "user_1_aaa", "user_1_aaa_user_2_bbb"},
		{"lexicographic not numeric", "user_10", "user_2", "user_10_user_2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ConversationKey(tc.a, tc.b))
			require.Equal(t, ConversationKey(tc.a, tc.b), ConversationKey(tc.b, tc.a))
		})
	}
}

func TestConversationKey_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		require.Equal(t, "a_b", ConversationKey("a", "b"))
	}
}
