// Package auth owns dashboard identity: users with bcrypt passwords, signed
// web sessions, and the credentials sign-in flow.
//
// Subpackages:
//   - authn: provider-agnostic sign-in entry point and error taxonomy
//   - credentials: email and password provider
//   - session: JWT-backed session issue, resolve, and revoke
//   - storage: persistence contracts and the SQLite implementation
//   - user: user model, email normalization, and password hashing
package auth
