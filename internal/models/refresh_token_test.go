package models

import (
	"testing"
	"time"
)

func TestRefreshTokenActive(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	revoked := now.Add(-time.Hour)

	tests := []struct {
		name      string
		expiresAt time.Time
		revokedAt *time.Time
		want      bool
	}{
		{"live token", now.Add(time.Hour), nil, true},
		{"expired", now.Add(-time.Minute), nil, false},
		{"revoked", now.Add(time.Hour), &revoked, false},
		{"expires exactly now", now, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := RefreshToken{ExpiresAt: tt.expiresAt, RevokedAt: tt.revokedAt}
			if got := token.Active(now); got != tt.want {
				t.Errorf("Active = %v, want %v", got, tt.want)
			}
		})
	}
}
