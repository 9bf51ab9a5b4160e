package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAccumulatesErrors(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	v.Check(true, "isbn", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)
}

func TestAddErrorKeepsFirstMessage(t *testing.T) {
	v := New()
	v.AddError("title", "must be provided")
	v.AddError("title", "must not be more than 500 bytes long")
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestMatchesEmail(t *testing.T) {
	assert.True(t, Matches("paul@arrakis.example", EmailRX))
	assert.False(t, Matches("not-an-email", EmailRX))
	assert.False(t, Matches("", EmailRX))
}

func TestUnique(t *testing.T) {
	assert.True(t, Unique([]string{"Frank Herbert", "Brian Herbert"}))
	assert.True(t, Unique(nil))
	assert.False(t, Unique([]string{"Frank Herbert", "Frank Herbert"}))
}
