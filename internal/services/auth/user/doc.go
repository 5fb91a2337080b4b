// Package user builds dashboard accounts and checks their passwords.
package user
