// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, and ID generation.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, candidate) // ErrInvalidCredentials on mismatch

Passwords shorter than MinPasswordLength are rejected with ErrPasswordTooShort.

# Session Tokens

Session tokens are random 32-byte secrets handed to the client once:

	token, err := auth.GenerateSessionToken()

Only the SHA-256 of a token is stored, so a leaked database cannot be replayed:

	stored := auth.HashToken(token)

Clients send the token as a bearer credential:

	Authorization: Bearer <token>

ParseBearer extracts it and returns ErrInvalidToken for anything else.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(12)  // 24 hex characters
*/
package auth
