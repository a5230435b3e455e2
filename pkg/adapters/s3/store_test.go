package s3

import (
	"context"
	"errors"
	"fmt"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"Typed NoSuchKey", &s3types.NoSuchKey{}, true},
		{"Wrapped Typed NoSuchKey", fmt.Errorf("get: %w", &s3types.NoSuchKey{}), true},
		{"Generic NoSuchKey Code", &smithy.GenericAPIError{Code: "NoSuchKey"}, true},
		{"Generic NotFound Code", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"Other API Error", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"Plain Error", errors.New("timeout"), false},
		{"Nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isNotFound(tc.err); got != tc.want {
				t.Errorf("isNotFound(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestNewStoreRequiresBucket(t *testing.T) {
	_, err := NewStore(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for missing bucket")
	}
}
