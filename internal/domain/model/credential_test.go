package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredential_ValidAt(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       bool
	}{
		{name: "expires in the future", expiration: now.Add(time.Second), want: true},
		{name: "expires exactly now", expiration: now, want: false},
		{name: "already expired", expiration: now.Add(-time.Minute), want: false},
		{name: "zero expiration", expiration: time.Time{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := Credential{AccessToken: "tok", Expiration: tt.expiration}
			assert.Equal(t, tt.want, cred.ValidAt(now))
		})
	}
}

func TestExpirationFrom(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, issued.Add(time.Hour), ExpirationFrom(issued))
}

func TestTruncateAnimals(t *testing.T) {
	animals := make([]AnimalRecord, 15)
	for i := range animals {
		animals[i] = AnimalRecord{ID: string(rune('a' + i))}
	}

	got := TruncateAnimals(animals)
	assert.Len(t, got, MaxAnimals)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "j", got[9].ID)

	assert.Len(t, TruncateAnimals(animals[:3]), 3)
	assert.Empty(t, TruncateAnimals(nil))
}
