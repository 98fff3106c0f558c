package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))

	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
}

func TestSet(t *testing.T) {
	Set("UTC")
	assert.Equal(t, "UTC", Now().Location().String())

	Set(DefaultTimezone)
	assert.Equal(t, DefaultTimezone, Now().Location().String())
}
