// Package integrity reports whether the service's infrastructure is ready.
//
// # Checks Provided
//
//   - Database: the sites and activity_records tables exist with every
//     column the application uses (supports ?fix=true to migrate).
//   - Storage: the bucket exists, the hosted site sheet is present when the
//     storage site source is used, and how many runs are stored (supports
//     ?fix=true to create the bucket).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/database : Runs the database check.
//   - GET /integrity/storage : Runs the storage check.
package integrity
