package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindConfiguration, "configuration"},
		{KindValidation, "validation"},
		{KindAuthentication, "authentication"},
		{KindTransport, "transport"},
		{KindStorage, "storage"},
		{KindStorageUnavailable, "storage_unavailable"},
		{KindCodec, "codec"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, KindStorage, "write payload")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if got := err.Error(); got != "write payload: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, KindStorage) {
		t.Error("Is(err, KindStorage) = false")
	}
	if Is(err, KindTransport) {
		t.Error("Is(err, KindTransport) = true for a storage error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(KindValidation, "unknown feed")
	outer := fmt.Errorf("get data: %w", inner)
	if !Is(outer, KindValidation) {
		t.Error("kind not detected through fmt.Errorf wrapping")
	}
}

func TestIsNonError(t *testing.T) {
	if Is(stderrors.New("plain"), KindValidation) {
		t.Error("plain error misclassified")
	}
	if Is(nil, KindValidation) {
		t.Error("nil error misclassified")
	}
}

func TestTransportStatusCode(t *testing.T) {
	err := Transport(503, "API call failed with status 503")
	if got := StatusCode(err); got != 503 {
		t.Errorf("StatusCode() = %d, want 503", got)
	}
	if got := StatusCode(stderrors.New("x")); got != 0 {
		t.Errorf("StatusCode(plain) = %d, want 0", got)
	}
}
