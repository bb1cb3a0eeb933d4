package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "hello world", Text("  hello world \n"))
	assert.Equal(t, "abc", Text("a\x00b\x1bc"))
	assert.Equal(t, "", Text("\t\r\n"))
	assert.Equal(t, "café", Text(" café "))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", Email("  User@Example.COM \n"))
	assert.Equal(t, "a@b.co", Email("A@B.co\x00"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "94771234567", Phone("+94 (77) 123-4567"))
	assert.Equal(t, "1234567890", Phone("1234567890"))
	assert.Equal(t, "", Phone("no digits"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "wireless-mouse", Slug("Wireless Mouse"))
	assert.Equal(t, "usb-c-hub", Slug("  USB-C  Hub "))
	assert.Equal(t, "a-b", Slug("a___b"))
	assert.Equal(t, "trailing", Slug("trailing--"))
	assert.Equal(t, "", Slug("!!!"))
}
