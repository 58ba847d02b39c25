package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("animal", 7)))
	assert.Equal(t, KindDuplicate, KindOf(fmt.Errorf("create: %w", Duplicate("phone", nil))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "animal with id 7 not found", NotFound("animal", 7).Error())
	assert.Equal(t, "a record with the same phone already exists", Duplicate("phone", nil).Message)

	cause := errors.New("dial tcp: refused")
	err := Internal("load animal", cause)
	assert.Equal(t, "load animal: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)

	v := InvalidField("end_date", "must be after start_date")
	assert.Equal(t, []string{"must be after start_date"}, v.Fields["end_date"])
}
