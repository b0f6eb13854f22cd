package errmap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFromRPC(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "not found",
			err:         status.Error(codes.NotFound, "card with id 42 not found"),
			wantKind:    KindNotFound,
			wantMessage: "card with id 42 not found",
		},
		{
			name:        "already exists",
			err:         status.Error(codes.AlreadyExists, "card number already registered"),
			wantKind:    KindAlreadyExists,
			wantMessage: "card number already registered",
		},
		{
			name:        "aborted maps to conflict",
			err:         status.Error(codes.Aborted, "concurrent balance update"),
			wantKind:    KindConflict,
			wantMessage: "concurrent balance update",
		},
		{
			name:        "failed precondition maps to foreign key violation",
			err:         status.Error(codes.FailedPrecondition, "user does not exist"),
			wantKind:    KindForeignKeyViolation,
			wantMessage: "user does not exist",
		},
		{
			name:        "invalid argument maps to validation",
			err:         status.Error(codes.InvalidArgument, "card_number is required"),
			wantKind:    KindValidation,
			wantMessage: "card_number is required",
		},
		{
			name:        "unauthenticated",
			err:         status.Error(codes.Unauthenticated, "invalid credentials"),
			wantKind:    KindUnauthorized,
			wantMessage: "invalid credentials",
		},
		{
			name:        "unauthenticated with expired token",
			err:         status.Error(codes.Unauthenticated, "access token expired"),
			wantKind:    KindTokenExpired,
			wantMessage: "access token expired",
		},
		{
			name:        "unauthenticated with wrong token type",
			err:         status.Error(codes.Unauthenticated, "unexpected token type: refresh"),
			wantKind:    KindInvalidTokenType,
			wantMessage: "unexpected token type: refresh",
		},
		{
			name:        "permission denied maps to unauthorized",
			err:         status.Error(codes.PermissionDenied, "merchant is inactive"),
			wantKind:    KindUnauthorized,
			wantMessage: "merchant is inactive",
		},
		{
			name:        "internal hides upstream message",
			err:         status.Error(codes.Internal, "pq: duplicate key value violates unique constraint"),
			wantKind:    KindInternal,
			wantMessage: "an internal error occurred",
		},
		{
			name:        "unavailable is unhandled",
			err:         status.Error(codes.Unavailable, "connection refused"),
			wantKind:    KindUnhandled,
			wantMessage: "upstream call failed",
		},
		{
			name:        "deadline exceeded is unhandled",
			err:         context.DeadlineExceeded,
			wantKind:    KindUnhandled,
			wantMessage: "upstream call aborted",
		},
		{
			name:        "plain error is unhandled",
			err:         errors.New("boom"),
			wantKind:    KindUnhandled,
			wantMessage: "upstream call failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := FromRPC(tt.err)
			require.NotNil(t, classified)
			assert.Equal(t, tt.wantKind, classified.Kind)
			assert.Equal(t, tt.wantMessage, classified.Message)
		})
	}
}

func TestFromRPCNil(t *testing.T) {
	assert.Nil(t, FromRPC(nil))
}

func TestFromRPCPreservesClassified(t *testing.T) {
	original := New(KindNotFound, "gone")
	classified := FromRPC(original)
	assert.Same(t, original, classified)
}

func TestFromRPCPreservesCause(t *testing.T) {
	transportErr := status.Error(codes.NotFound, "missing")
	classified := FromRPC(transportErr)
	assert.ErrorIs(t, classified.Unwrap(), transportErr)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindAlreadyExists, http.StatusConflict},
		{KindForeignKeyViolation, http.StatusBadRequest},
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindTokenExpired, http.StatusUnauthorized},
		{KindInvalidTokenType, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
		{KindUnhandled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := New(KindConflict, "version clash")
	assert.ErrorIs(t, err, New(KindConflict, "other message"))
	assert.NotErrorIs(t, err, New(KindNotFound, "version clash"))
}

func TestValidation(t *testing.T) {
	err := Validation("invalid request", map[string]string{
		"card_number": "must be 16 digits",
		"balance":     "must not be negative",
	})
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t,
		"invalid request (balance: must not be negative; card_number: must be 16 digits)",
		err.Message)

	plain := Validation("invalid request", nil)
	assert.Equal(t, "invalid request", plain.Message)
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("json: cannot unmarshal")
	err := Internal(cause)
	assert.Equal(t, KindInternal, err.Kind)
	assert.Equal(t, "an internal error occurred", err.Message)
	assert.ErrorIs(t, err, err)
	assert.Equal(t, cause, err.Unwrap())
}

func TestRender(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "conflict",
			err:        FromRPC(status.Error(codes.Aborted, "balance changed")),
			wantStatus: http.StatusConflict,
			wantBody:   `{"status":"error","message":"balance changed"}`,
		},
		{
			name:       "not found",
			err:        FromRPC(status.Error(codes.NotFound, "card not found")),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"status":"error","message":"card not found"}`,
		},
		{
			name:       "internal never leaks cause",
			err:        Internal(errors.New("dial tcp: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":"error","message":"an internal error occurred"}`,
		},
		{
			name:       "unclassified error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":"error","message":"an internal error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Render(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
