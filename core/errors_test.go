package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	errSame := errors.New("cannot copy a course schedule onto itself")

	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantIs   error
		wantFlds map[string]string
	}{
		{
			name:     "with cause",
			err:      NewValidationError(errSame, FieldError{Field: "fromCourseId", Error: errSame.Error()}),
			wantMsg:  errSame.Error(),
			wantIs:   errSame,
			wantFlds: map[string]string{"fromCourseId": errSame.Error()},
		},
		{
			name:     "fields only",
			err:      NewValidationError(nil, FieldError{Field: "courseId", Error: "required"}, FieldError{Field: "to", Error: "required"}),
			wantMsg:  "courseId: required; to: required",
			wantFlds: map[string]string{"courseId": "required", "to": "required"},
		},
		{
			name: "empty",
			err:  NewValidationError(nil),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			if tt.wantIs != nil {
				assert.ErrorIs(t, tt.err, tt.wantIs)
			}

			var vErr *ValidationError
			if assert.True(t, errors.As(tt.err, &vErr)) {
				assert.Equal(t, tt.wantFlds, vErr.FieldMap())
			}
		})
	}
}
