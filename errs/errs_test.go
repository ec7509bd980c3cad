package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := Missing("password")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "password")
	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrap:%w", err), &ve))
	assert.Equal(t, "password", ve.Field)
}

func TestFaultError(t *testing.T) {
	exception := "ObjectNotFound"
	err := fmt.Errorf("call failed:%w", &FaultError{StatusCode: 404, Exception: &exception})
	fe, ok := IsFault(err)
	assert.True(t, ok)
	assert.Equal(t, 404, fe.StatusCode)
	assert.Contains(t, fe.Error(), "ObjectNotFound")
	assert.Contains(t, fe.Error(), "empty message")
	_, ok = IsFault(errors.New("other"))
	assert.False(t, ok)
}

func TestDecodeError(t *testing.T) {
	inner := errors.New("eof")
	err := Decode("history", inner)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, inner))
	assert.True(t, errors.Is(DecodeMissing("share link", "sharelink"), ErrDecode))
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}
