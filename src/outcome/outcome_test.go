package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	assert.Equal(t, Applied, Merge(Failed, Applied))
	assert.Equal(t, Applied, Merge(Applied, Satisfied))
	assert.Equal(t, Failed, Merge(Satisfied, Failed))
	assert.Equal(t, Satisfied, Merge(Satisfied, Satisfied))
}

func TestString(t *testing.T) {
	assert.Equal(t, "applied", Applied.String())
	assert.Equal(t, "satisfied", Satisfied.String())
	assert.Equal(t, "failed", Failed.String())
}
