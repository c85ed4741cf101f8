package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last-1@mail.co.uk", true},
		{"under_score@host.io", true},
		{"user@example", false},
		{"userexample.com", false},
		{"@example.com", false},
		{"user@.com", false},
		{"user name@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, validEmail(tt.email))
		})
	}
}

func TestValidPassword(t *testing.T) {
	assert.False(t, validPassword("12345"))
	assert.True(t, validPassword("123456"))
	assert.True(t, validPassword("пароль"))
	assert.True(t, validPassword("      "))
	assert.False(t, validPassword("ключ"))
	assert.True(t, validPassword(strings.Repeat("п", 40)))
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+79991234567", true},
		{"89991234567", true},
		{"79991234567", false},
		{"+7999123456", true},
		{"+7999123456789", false},
		{"8999123456", false},
		{"+19991234567", false},
		{"8abcdefghij", true},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, validPhone(tt.phone))
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input, cmd, args string
	}{
		{"/start", "start", ""},
		{"/phone +79991234567", "phone", "+79991234567"},
		{"/Repair@skate_bot  12 ", "repair", "12"},
	}
	for _, tt := range tests {
		cmd, args := parseCommand(tt.input)
		assert.Equal(t, tt.cmd, cmd, tt.input)
		assert.Equal(t, tt.args, args, tt.input)
	}
}

func TestParseCallbacks(t *testing.T) {
	size, ok := parseSizeCallback("size_42")
	assert.True(t, ok)
	assert.Equal(t, 42, size)

	_, ok = parseSizeCallback("size_x")
	assert.False(t, ok)
	_, ok = parseSizeCallback("confirm")
	assert.False(t, ok)

	id, ok := parseReturnCallback("ret_17")
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)

	_, ok = parseReturnCallback("ret_-1")
	assert.False(t, ok)
}

func TestSizesKeyboard(t *testing.T) {
	kb := sizesKeyboard([]int{36, 37, 38, 39, 40, 41})
	assert.Equal(t, InlineKeyboard, kb.Kind)
	assert.Len(t, kb.Rows, 2)
	assert.Len(t, kb.Rows[0], 4)
	assert.Equal(t, Button{Text: "41", Data: "size_41"}, kb.Rows[1][1])
}
