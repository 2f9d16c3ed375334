// Package commands defines the pawmarket admin CLI.
//
// Commands
//
//   - migrate         Apply the SurrealQL schema migrations in order
//   - create-admin    Create an admin account
//   - seed            Populate the marketplace with demo data
//   - seed cleanup    Remove previously seeded records by prefix
//   - recalc-ratings  Rebuild every caregiver's rating aggregate
//   - token           Sign an admin access token offline
//
// # Implementation
//
// The root command loads configuration before any subcommand runs. Commands
// that touch the database open their own connection for the duration of the
// run; token signing works offline from the private key alone.
package commands
