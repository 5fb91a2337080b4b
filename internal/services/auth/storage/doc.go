// Package storage declares how users and web sessions are persisted.
package storage
