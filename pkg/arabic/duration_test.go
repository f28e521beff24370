package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDelay(t *testing.T) {
	assert.Equal(t, "منضبط", FormatDelay(0))
	assert.Equal(t, "منضبط", FormatDelay(-5))
	assert.Equal(t, "12 دقيقة", FormatDelay(12))
	assert.Equal(t, "59 دقيقة", FormatDelay(59))
	assert.Equal(t, "1 س و 0 د", FormatDelay(60))
	assert.Equal(t, "1 س و 30 د", FormatDelay(90))
	assert.Equal(t, "2 س و 5 د", FormatDelay(125))
}
