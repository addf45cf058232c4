package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWT_UniqueTokenIDs(t *testing.T) {
	j := New(WithSecretKey("test-secret"))
	ctx := context.Background()

	t1, err := j.Generate(ctx, 1)
	require.NoError(t, err)
	t2, err := j.Generate(ctx, 1)
	require.NoError(t, err)

	c1, err := j.GetClaims(ctx, t1)
	require.NoError(t, err)
	c2, err := j.GetClaims(ctx, t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 1)
	require.NoError(t, err)

	assert.Error(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	assert.Error(t, j.Validate(ctx, "invalid.token.string"))

	other := New(WithSecretKey("other-secret"))
	token, err := other.Generate(ctx, 1)
	require.NoError(t, err)
	assert.Error(t, j.Validate(ctx, token))
}

func TestJWT_RejectsOtherSigningMethod(t *testing.T) {
	j := New(WithSecretKey("secret"))
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{UserID: 1})
	s, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Error(t, j.Validate(context.Background(), s))
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "missing", header: "", wantErr: ErrMissingHeader},
		{name: "wrong scheme", header: "Token abc", wantErr: ErrInvalidHeader},
		{name: "no token", header: "Bearer", wantErr: ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := j.GetTokenFromRequest(context.Background(), r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
