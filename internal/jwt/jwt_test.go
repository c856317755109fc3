package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testKey *rsa.PrivateKey

func privateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	if testKey == nil {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatal(err)
		}

		testKey = key
	}

	return testKey
}

func signClaims(t *testing.T, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	signed, err := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(privateKey(t))
	if err != nil {
		t.Fatal(err)
	}

	return signed
}

func TestSignAndValidatePlayerID(t *testing.T) {
	s := NewSigner(privateKey(t))

	sign, err := s.Sign(18)
	assert.NoError(t, err)

	id, err := s.ValidPlayerID(sign)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), id)

	id, err = NewVerifier(&privateKey(t).PublicKey).ValidPlayerID(sign)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), id)
}

func TestSigner_TTL(t *testing.T) {
	s := NewSigner(privateKey(t))
	s.TTL = time.Hour

	sign, err := s.Sign(3)
	assert.NoError(t, err)

	token, _, err := jwtgo.NewParser().ParseUnverified(sign, &jwtgo.RegisteredClaims{})
	assert.NoError(t, err)

	exp, err := token.Claims.GetExpirationTime()
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestNewVerifier_cannotSign(t *testing.T) {
	_, err := NewVerifier(&privateKey(t).PublicKey).Sign(1)
	assert.Equal(t, ErrNoPrivateKey, err)
}

func TestValidPlayerID_InvalidAudience(t *testing.T) {
	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "15",
	})

	id, err := NewSigner(privateKey(t)).ValidPlayerID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_InvalidIssuer(t *testing.T) {
	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	id, err := NewSigner(privateKey(t)).ValidPlayerID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_Expired(t *testing.T) {
	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		Issuer:    Issuer,
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Subject:   "15",
	})

	id, err := NewSigner(privateKey(t)).ValidPlayerID(signedToken)
	assert.True(t, errors.Is(err, jwtgo.ErrTokenExpired))
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_wrongKey(t *testing.T) {
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	sign, err := NewSigner(other).Sign(1)
	assert.NoError(t, err)

	_, err = NewSigner(privateKey(t)).ValidPlayerID(sign)
	assert.True(t, errors.Is(err, jwtgo.ErrTokenSignatureInvalid))
}

func TestLoadSigner(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	key := privateKey(t)

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	a.NoError(err)

	publicPath := filepath.Join(dir, "public.pem")
	privatePath := filepath.Join(dir, "private.key")
	a.NoError(os.WriteFile(publicPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes}), 0600))
	a.NoError(os.WriteFile(privatePath, pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}), 0600))

	s, err := LoadSigner(publicPath, privatePath)
	a.NoError(err)
	sign, err := s.Sign(42)
	a.NoError(err)

	verifier, err := LoadSigner(publicPath, "")
	a.NoError(err)
	id, err := verifier.ValidPlayerID(sign)
	a.NoError(err)
	a.Equal(int64(42), id)

	_, err = LoadSigner(filepath.Join(dir, "missing.pem"), "")
	a.Error(err)
	a.Contains(err.Error(), "could not read public key")

	_, err = LoadSigner(privatePath, "")
	a.Error(err)

	_, err = LoadSigner(publicPath, publicPath)
	a.Error(err)
	a.Contains(err.Error(), "could not parse RSA private key")
}
