// Package storage defines the user repository contract and its sentinel
// errors. Implementations live in the memory and postgres subpackages.
package storage
