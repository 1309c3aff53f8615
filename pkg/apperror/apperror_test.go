package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatchingSurvivesWrapping(t *testing.T) {
	sentinel := New(CodeNotFound, "doctor not found")

	wrapped := fmt.Errorf("lookup: %w", sentinel)
	assert.ErrorIs(t, wrapped, sentinel)

	other := New(CodeNotFound, "treatment not found")
	assert.NotErrorIs(t, wrapped, other)
}

func TestAsDomain(t *testing.T) {
	derr := New(CodeCapacityFull, "clinic is fully booked for that time")

	assert.Equal(t, derr, AsDomain(derr))
	assert.Equal(t, derr, AsDomain(fmt.Errorf("create: %w", derr)))
	assert.Nil(t, AsDomain(errors.New("connection refused")))
	assert.Nil(t, AsDomain(nil))
}

func TestAsDomainJoinedErrors(t *testing.T) {
	derr := New(CodeTimeInvalid, "requested time is outside operating hours")

	joined := errors.Join(errors.New("rollback failed"), derr)
	assert.Equal(t, derr, AsDomain(joined))

	rewrapped := fmt.Errorf("booking: %w", joined)
	assert.Equal(t, derr, AsDomain(rewrapped))

	assert.Nil(t, AsDomain(errors.Join(errors.New("a"), errors.New("b"))))
}
