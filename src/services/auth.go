package services

import (
	"crypto/ed25519"
	"encoding/base64"
	"log"
	"time"

	"fluxtrail/src/common"
	"fluxtrail/src/config"
	"fluxtrail/src/types"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/golang-jwt/jwt/v4"
)

const SessionLifetimeSeconds = 86400

// AuthService proves administrator identity from a self-signed ledger
// transaction instead of a stored credential: only the holder of the admin
// key can produce a validly signed self-payment.
type AuthService struct {
	adminAddress string
	jwtSecret    []byte
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		adminAddress: cfg.AdminAddress,
		jwtSecret:    []byte(cfg.AdminJWTSecret),
	}
}

// VerifyAdminTransaction decodes a base64 signed payment transaction and
// requires sender == receiver, sender == configured admin address, and a
// valid ed25519 signature over the canonical signing bytes. Every failure
// collapses to Unauthorized.
func (s *AuthService) VerifyAdminTransaction(authTxnBase64 string) (*types.AdminIdentity, error) {
	raw, err := base64.StdEncoding.DecodeString(authTxnBase64)
	if err != nil {
		log.Printf("Error decoding auth transaction: %s\n", err.Error())
		return nil, common.ErrUnauthorized("Invalid auth transaction")
	}

	var stxn sdktypes.SignedTxn
	if err := msgpack.Decode(raw, &stxn); err != nil {
		log.Printf("Error decoding auth transaction: %s\n", err.Error())
		return nil, common.ErrUnauthorized("Invalid auth transaction")
	}

	from := stxn.Txn.Sender.String()
	to := stxn.Txn.Receiver.String()
	if from != to {
		return nil, common.ErrUnauthorized("Invalid auth transaction")
	}
	if from != s.adminAddress {
		return nil, common.ErrUnauthorized("Unrecognized auth transaction sender")
	}

	adminAddr, err := sdktypes.DecodeAddress(s.adminAddress)
	if err != nil {
		log.Printf("Error decoding admin address: %s\n", err.Error())
		return nil, common.ErrUnauthorized("Invalid auth transaction")
	}

	// The Algorand address is the signer's ed25519 public key.
	bytesToSign := append([]byte("TX"), msgpack.Encode(&stxn.Txn)...)
	if !ed25519.Verify(ed25519.PublicKey(adminAddr[:]), bytesToSign, stxn.Sig[:]) {
		return nil, common.ErrUnauthorized("Invalid auth transaction signer")
	}

	return &types.AdminIdentity{Address: s.adminAddress}, nil
}

// IssueSession signs a bearer token for an already verified identity.
func (s *AuthService) IssueSession(identity *types.AdminIdentity) (*types.AdminSession, error) {
	now := time.Now()
	claims := types.Claims{
		Address: identity.Address,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Address,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionLifetimeSeconds * time.Second)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		log.Printf("Error signing session token: %s\n", err.Error())
		return nil, err
	}
	return &types.AdminSession{AccessToken: signed, ExpiresIn: SessionLifetimeSeconds}, nil
}

// ValidateSession reports the same Unauthorized for an expired, malformed or
// forged token; no distinction leaks to the caller.
func (s *AuthService) ValidateSession(tokenString string) (*types.AdminIdentity, error) {
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		return nil, common.ErrUnauthorized("Unauthorized")
	}
	if !tkn.Valid || claims.Address != s.adminAddress {
		return nil, common.ErrUnauthorized("Unauthorized")
	}
	return &types.AdminIdentity{Address: claims.Address}, nil
}
