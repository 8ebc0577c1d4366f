// Package auth is the pluggable identity collaborator: local librarian
// accounts with bcrypt passwords, database-backed sessions, login/setup
// pages, and the CSRF and security-header middleware applied to the HTML
// surface. The library domain never depends on it; the router wires it in
// when AUTH_MODE=local.
package auth
