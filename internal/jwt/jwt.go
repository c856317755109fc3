package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "blackjack-server"

// Audience is the intended JWT audience
const Audience = "blackjack-players"

// ErrNoPrivateKey is returned when signing without a private key
var ErrNoPrivateKey = errors.New("signer has no private key")

// Signer issues and validates player tokens
type Signer struct {
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey

	// TTL is how long issued tokens are valid for, zero never expires
	TTL time.Duration
}

// NewSigner returns a signer for the key pair
func NewSigner(privateKey *rsa.PrivateKey) *Signer {
	return &Signer{
		publicKey:  &privateKey.PublicKey,
		privateKey: privateKey,
	}
}

// NewVerifier returns a signer that can only validate tokens
func NewVerifier(publicKey *rsa.PublicKey) *Signer {
	return &Signer{publicKey: publicKey}
}

// LoadSigner loads the PEM encoded keys
// The private key is optional, without it the signer can only validate.
func LoadSigner(publicKeyPath, privateKeyPath string) (*Signer, error) {
	publicKey, err := loadPublicKey(publicKeyPath)
	if err != nil {
		return nil, err
	}

	s := NewVerifier(publicKey)
	if privateKeyPath == "" {
		return s, nil
	}

	if s.privateKey, err = loadPrivateKey(privateKeyPath); err != nil {
		return nil, err
	}

	return s, nil
}

// Sign will sign a JWT for the player ID
func (s *Signer) Sign(playerID int64) (string, error) {
	if s.privateKey == nil {
		return "", ErrNoPrivateKey
	}

	now := time.Now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  strconv.FormatInt(playerID, 10),
	}

	if s.TTL > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(s.TTL))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(s.privateKey)
}

// ValidPlayerID will validate a signed JWT and return the player ID
func (s *Signer) ValidPlayerID(signedString string) (int64, error) {
	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return s.publicKey, nil
	})

	if err != nil {
		return 0, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return 0, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return 0, errors.New("invalid issuer")
			}

			return strconv.ParseInt(claims.Subject, 10, 64)
		}

		return 0, fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return 0, errors.New("claims were not valid")
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read public key: %w", err)
	}

	key, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return key, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read private key: %w", err)
	}

	key, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return key, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
