package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{in: "pdf", want: ExportFormatPDF},
		{in: "PDF", want: ExportFormatPDF},
		{in: " csv ", want: ExportFormatCSV},
		{in: "Csv", want: ExportFormatCSV},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleChatRole(t *testing.T) {
	assert.Equal(t, "user", RoleUser.ChatRole())
	assert.Equal(t, "assistant", RoleAssistant.ChatRole())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("SYSTEM").Valid())
}

func TestNewStorageError(t *testing.T) {
	assert.Nil(t, NewStorageError("op", nil))

	notFound := fmt.Errorf("session s1: %w", ErrNotFound)
	assert.Same(t, notFound, NewStorageError("op", notFound))

	err := NewStorageError("save turn", errors.New("disk full"))
	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "save turn", se.Op)

	assert.Same(t, err, NewStorageError("outer", err))
}

func TestIDPrefixes(t *testing.T) {
	assert.Regexp(t, `^usr_`, NewUserID())
	assert.Regexp(t, `^sess_`, NewSessionID())
	assert.Regexp(t, `^msg_`, NewMessageID())
	assert.NotEqual(t, NewMessageID(), NewMessageID())
}
