package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionRoundTrip(t *testing.T) {
	db := setupTestDB(t, "session", &Session{})

	session := Session{
		DoctorID:     1,
		SessionToken: "token-abc",
		ExpiresAt:    time.Now().Add(time.Hour),
		ClientIP:     "127.0.0.1",
		Browser:      "test-agent",
	}
	assert.NoError(t, db.Create(&session).Error)

	var found Session
	assert.NoError(t, db.Where("session_token = ?", "token-abc").First(&found).Error)
	assert.Equal(t, uint(1), found.DoctorID)
	assert.True(t, found.ExpiresAt.After(time.Now()))
}

func TestSessionDeleteByToken(t *testing.T) {
	db := setupTestDB(t, "session_delete", &Session{})

	session := Session{DoctorID: 1, SessionToken: "token-del", ExpiresAt: time.Now().Add(time.Hour)}
	assert.NoError(t, db.Create(&session).Error)
	assert.NoError(t, db.Where("session_token = ?", "token-del").Delete(&Session{}).Error)

	var count int64
	assert.NoError(t, db.Model(&Session{}).Where("session_token = ?", "token-del").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
