// Package jwt provides JSON Web Token utilities for the PawMarket API.
//
// Tokens are RS256-signed. The service loads PEM-encoded RSA keys at
// startup; a validation-only service can be built from just the public key.
//
// # Signing
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "pawmarket",
//	    ExpirationMins: 15,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    Subject: user.ID,
//	    UserID:  user.ID,
//	    Email:   user.Email,
//	    Role:    string(user.Role),
//	})
//
// # Validation
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // expired, malformed, bad signature, or wrong issuer
//	}
//	userID := claims.UserID
//
// The Role claim carries the marketplace role (owner, caregiver, admin);
// Claims.IsAdmin is a convenience check for admin-gated handlers.
package jwt
