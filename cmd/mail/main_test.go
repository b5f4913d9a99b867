package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zovio-dev/hrms/backend/internal/domain"
)

func TestBuildMsg(t *testing.T) {
	tmpls, err := loadTemplates("../../templates")
	require.NoError(t, err)

	body, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   "asha@example.com",
		Data: domain.WelcomeMailData{Name: "Asha Rao", EmployeeID: "DB1234"},
	})
	require.NoError(t, err)

	m, err := buildMsg("hr@example.com", body, tmpls)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "DB1234")
	assert.Contains(t, buf.String(), "asha@example.com")
}

func TestBuildMsg_Rejects(t *testing.T) {
	tmpls, err := loadTemplates("../../templates")
	require.NoError(t, err)

	_, err = buildMsg("hr@example.com", []byte("not json"), tmpls)
	assert.Error(t, err)

	body, _ := json.Marshal(domain.MailMessage{Type: "reset_password", To: "asha@example.com"})
	_, err = buildMsg("hr@example.com", body, tmpls)
	assert.ErrorContains(t, err, "unsupported mail type")

	body, _ = json.Marshal(domain.MailMessage{Type: domain.MailTypeOTP, To: "not-an-address"})
	_, err = buildMsg("hr@example.com", body, tmpls)
	assert.Error(t, err)
}
