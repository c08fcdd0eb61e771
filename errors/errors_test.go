package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "op only",
			err:  NewError("parse", ErrInvalidURL),
			want: "gscp.parse: gscp: invalid source URL",
		},
		{
			name: "with bucket",
			err:  NewBucketError("resolveBucket", "my-bucket", ErrBucketNotFound),
			want: "gscp.resolveBucket bucket my-bucket: gscp: bucket not found",
		},
		{
			name: "with bucket and key",
			err:  NewObjectError("materialize", "my-bucket", "a/1.txt", ErrObjectNotFound),
			want: "gscp.materialize my-bucket/a/1.txt: gscp: object not found",
		},
		{
			name: "key only",
			err:  NewError("materialize", ErrObjectNotFound).WithKey("a/1.txt"),
			want: "gscp.materialize object a/1.txt: gscp: object not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := stderrors.New("boom")
	err := NewError("copy", underlying)

	assert.Equal(t, underlying, err.Unwrap())
	assert.ErrorIs(t, err, underlying)
}

func TestError_WithMessage(t *testing.T) {
	err := NewBucketError("copy", "b", ErrEmptySelection).WithMessage(`no objects match prefix "nope"`)

	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Contains(t, err.Error(), `no objects match prefix "nope"`)
}

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"invalid url", NewError("parse", ErrInvalidURL), IsInvalidURL},
		{"bucket not found", NewBucketError("resolveBucket", "b", ErrBucketNotFound), IsBucketNotFound},
		{"object not found", NewObjectError("materialize", "b", "k", ErrObjectNotFound), IsObjectNotFound},
		{"empty selection", NewBucketError("copy", "b", ErrEmptySelection), IsEmptySelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.False(t, tt.checker(stderrors.New("unrelated")))
		})
	}
}
