package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

func TestIdentityFromClaims(t *testing.T) {
	userID := uuid.New()

	t.Run("full claims", func(t *testing.T) {
		identity := identityFromClaims(map[string]interface{}{
			"sub":   userID.String(),
			"name":  "alice",
			"roles": []interface{}{"superadmin"},
		})

		assert.Equal(t, userID, identity.ID)
		assert.Equal(t, "alice", identity.DisplayName)
		assert.Equal(t, []simpleblog.Role{simpleblog.RoleSuperAdmin}, identity.Roles)
		assert.True(t, identity.IsAuthenticated())
	})

	t.Run("malformed sub stays anonymous", func(t *testing.T) {
		identity := identityFromClaims(map[string]interface{}{
			"sub":  "not-a-uuid",
			"name": "alice",
		})

		assert.Equal(t, uuid.Nil, identity.ID)
		assert.False(t, identity.IsAuthenticated())
	})

	t.Run("empty claims", func(t *testing.T) {
		identity := identityFromClaims(map[string]interface{}{})
		assert.False(t, identity.IsAuthenticated())
		assert.Empty(t, identity.Roles)
	})
}

func TestSanitizeUploadFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cat.png", "cat.png"},
		{"photo 1.jpg", "photo 1.jpg"},
		{`C:\Users\alice\cat.png`, "cat.png"},
		{"/tmp/secret/../cat.png", "cat.png"},
		{"caf\u00e9.png", "cafe.png"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeUploadFilename(tt.in))
		})
	}
}
