// Command directory runs the key directory server.
//
// Usage:
//
//	directory [-addr :8080] [-data ./keys.db]
//
// Records are kept in memory unless -data names a badger directory. When the
// API_KEY environment variable is set, registrations must present it as a
// bearer token.
package main
