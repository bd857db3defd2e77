package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"moneymaster-server/internal/config"
	"os"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "server.moneymaster"

// Audience is the intended JWT audience
const Audience = "players.moneymaster"

// tokenTTL is how long a signed token is valid for
const tokenTTL = time.Hour * 24 * 30

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// User is the caller identified by a token
type User struct {
	// ID is opaque, it is never interpreted by the server
	ID        string `json:"id"`
	Moderator bool   `json:"moderator"`
}

type claims struct {
	jwtgo.RegisteredClaims
	Moderator bool `json:"mod,omitempty"`
}

// LoadKeys will load the public and private keys
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	if err := LoadKeysFromFiles(cfg.PublicKey, cfg.PrivateKey); err != nil {
		logrus.WithError(err).Fatal("could not load keys")
	}
}

// LoadKeysFromFiles loads the PEM encoded keys
func LoadKeysFromFiles(publicKeyPath, privateKeyPath string) error {
	pub, err := loadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	priv, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	publicKey = pub
	privateKey = priv
	return nil
}

// Sign will sign a JWT for the user
func Sign(userID string, moderator bool) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	if userID == "" {
		return "", errors.New("user ID is required")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience:  jwtgo.ClaimStrings{Audience},
			ID:        uuid.New().String(),
			IssuedAt:  jwtgo.NewNumericDate(now),
			ExpiresAt: jwtgo.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    Issuer,
			Subject:   userID,
		},
		Moderator: moderator,
	})

	return token.SignedString(privateKey)
}

// ValidUser will validate a signed JWT and return the user it was issued to
func ValidUser(signedString string) (*User, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &claims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	}, jwtgo.WithAudience(Audience), jwtgo.WithIssuer(Issuer))

	if err != nil {
		return nil, err
	}

	c, ok := token.Claims.(*claims)
	if !ok {
		return nil, fmt.Errorf("expected claims, got %T", token.Claims)
	}

	if c.Subject == "" {
		return nil, errors.New("missing subject")
	}

	return &User{ID: c.Subject, Moderator: c.Moderator}, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return pem, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return pem, nil
}
