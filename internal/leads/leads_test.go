package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func validContact() ContactRequest {
	return ContactRequest{
		Name:    "Dana Reyes",
		Email:   "dana@example.com",
		Phone:   "410-555-0100",
		Message: "Interested in an 8 kW system",
	}
}

func validApplication() ApplicationRequest {
	return ApplicationRequest{
		Name:     "Sam Ortiz",
		Email:    "sam@example.com",
		Phone:    "301-555-0199",
		Position: "Installer",
	}
}

func TestValidate_Contact(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ContactRequest)
		wantField string
	}{
		{name: "valid", mutate: func(*ContactRequest) {}},
		{name: "missing name", mutate: func(r *ContactRequest) { r.Name = "" }, wantField: "name"},
		{name: "blank name", mutate: func(r *ContactRequest) { r.Name = "   " }, wantField: "name"},
		{name: "missing email", mutate: func(r *ContactRequest) { r.Email = "" }, wantField: "email"},
		{name: "malformed email", mutate: func(r *ContactRequest) { r.Email = "dana-at-example" }, wantField: "email"},
		{name: "missing phone", mutate: func(r *ContactRequest) { r.Phone = "" }, wantField: "phone"},
		{name: "missing message", mutate: func(r *ContactRequest) { r.Message = "" }, wantField: "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validContact()
			tt.mutate(&req)
			err := Validate(req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantField, fe.Field)
			assert.True(t, errors.Is(err, ErrInvalidLead))
		})
	}
}

func TestValidate_ContactEstimate(t *testing.T) {
	req := validContact()
	in := engine.DefaultInput()
	req.Estimate = &in
	assert.NoError(t, Validate(req))

	in.SystemSizeKw = -1
	err := Validate(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidInput))
}

func TestValidate_Application(t *testing.T) {
	assert.NoError(t, Validate(validApplication()))

	req := validApplication()
	req.Position = ""
	var fe *FieldError
	require.True(t, errors.As(Validate(req), &fe))
	assert.Equal(t, "position", fe.Field)
}

func TestValidate_UnsupportedForm(t *testing.T) {
	assert.True(t, errors.Is(Validate("hello"), ErrInvalidLead))
}

func TestLogSubmitter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewLogSubmitter(zap.New(core))
	ctx := context.Background()

	receipt, err := s.SubmitContact(ctx, validContact())
	require.NoError(t, err)
	assert.Equal(t, KindContact, receipt.Kind)
	_, err = uuid.Parse(receipt.ID)
	assert.NoError(t, err)
	assert.False(t, receipt.ReceivedAt.IsZero())

	second, err := s.SubmitApplication(ctx, validApplication())
	require.NoError(t, err)
	assert.Equal(t, KindApplication, second.Kind)
	assert.NotEqual(t, receipt.ID, second.ID)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "contact request received", entries[0].Message)
	assert.Equal(t, receipt.ID, entries[0].ContextMap()["id"])
	assert.Equal(t, "Installer", entries[1].ContextMap()["position"])
}

func TestLogSubmitter_RejectsInvalid(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewLogSubmitter(zap.New(core))

	req := validContact()
	req.Email = ""
	_, err := s.SubmitContact(context.Background(), req)
	assert.True(t, errors.Is(err, ErrInvalidLead))
	assert.Zero(t, logs.Len())
}
