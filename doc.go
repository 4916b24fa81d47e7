// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Triddle API server.

Triddle is a form builder: users assemble multi-question forms, share a
public link, and collect typed responses that can be listed or exported
as CSV. The companion terminal client lives in cmd/triddle.

# Starting the Server

With no configuration the server listens on port 5000 and keeps its data
in ./triddle.db (SQLite):

	go run .

PostgreSQL instead:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first.

# Configuration

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - PUBLIC_ORIGIN (-origin): Origin used in share links
  - SESSION_TTL (-session-ttl): Login session lifetime (default: 720h)

# Architecture

  - handlers: HTTP request handlers (auth, forms, responses)
  - router: Route definitions using Go 1.22+ routing, mounted under /api
  - middleware: Bearer auth, CORS, logging, JSON helpers
  - models: Domain, request and response types plus validation
  - auth: Password hashing and session tokens
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing
  - report: Answer formatting and CSV export

See package documentation for each component.
*/
package main
