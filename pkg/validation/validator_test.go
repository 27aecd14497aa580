package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username   string `json:"username" validate:"required,username"`
	Password   string `json:"password" validate:"required,pwd"`
	Category   string `json:"category" validate:"omitempty,category"`
	WeeklyGoal int    `json:"weeklyGoal" validate:"gt=0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetails_ValidationErrors(t *testing.T) {
	v := newValidator()
	err := v.Struct(sample{Password: "abc", Category: "Yoga", WeeklyGoal: 0})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["username"])
	assert.Equal(t, "min length 6", details["password"])
	assert.Equal(t, "must be one of: Cardio, Strength, Flexibility, Balance, Other", details["category"])
	assert.Equal(t, "must be greater than 0", details["weeklyGoal"])
}

func TestToDetails_Valid(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Struct(sample{Username: "alice", Password: "secret1", Category: "Cardio", WeeklyGoal: 150}))
	assert.NoError(t, v.Struct(sample{Username: "alice", Password: "secret1", WeeklyGoal: 1}))
	assert.Nil(t, ToDetails(nil))
}

func TestToDetails_JSONAndFieldErrors(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte(`{"a":`), &dst)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = &FieldError{Field: "duration", Message: "must be a number"}
	assert.Equal(t, map[string]string{"duration": "must be a number"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("eof")))
}
