// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Drivers

Two drivers are supported, selected by the configured database type:

  - sqlite (default): modernc.org/sqlite, pure Go, WAL mode, foreign keys on
  - postgres: github.com/lib/pq

	conn, err := db.Open(db.TypeSQLite, "triddle.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The statements use only types both drivers understand; timestamps are set
by the application, never by column defaults.

# Tables

  - users: accounts (bcrypt password hash, unique email)
  - sessions: SHA-256 of bearer tokens with expiry
  - forms: form metadata plus the question list as JSON text
  - responses: one row per submission, answers as JSON text

# Relationships

	users 1──* sessions
	users 1──* forms
	forms 1──* responses

All foreign keys use ON DELETE CASCADE. Handlers also delete dependent rows
explicitly so behavior does not depend on sqlite's foreign_keys pragma.

# Errors

IsUniqueViolation recognizes unique-constraint failures from both drivers.
*/
package db
