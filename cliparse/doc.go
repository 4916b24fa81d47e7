// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Server Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: file path for sqlite (default: triddle.db), connection string for postgres (required)
  - PublicOrigin: origin used to build share links (default: http://localhost:3000)
  - SessionTTL: login session lifetime (default: 720h)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-origin       Public origin
	-session-ttl  Session lifetime

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	PUBLIC_ORIGIN  → -origin
	SESSION_TTL    → -session-ttl

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so .env values behave like real
environment variables.

# Client Configuration

LoadClientConfig reads the triddle CLI settings:

	TRIDDLE_API_URL       API base URL (default: http://localhost:5000/api)
	TRIDDLE_ORIGIN        Origin for share links (default: http://localhost:3000)
	TRIDDLE_SESSION_FILE  Where the login token is kept (default: <config dir>/triddle/session.json)
*/
package cliparse
