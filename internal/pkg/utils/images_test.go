package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImages_RoundTrip(t *testing.T) {
	in := []string{"/img/101-a.jpg", "/img/101-b.jpg"}
	assert.Equal(t, in, StringToImages(ImagesToString(in)))
}

func TestStringToImages_Legacy(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, StringToImages("a.jpg, b.jpg"))
	assert.Equal(t, []string{}, StringToImages(""))
	assert.Equal(t, "[]", ImagesToString(nil))
}
