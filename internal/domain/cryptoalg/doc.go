// Package cryptoalg defines the capability interface shared by the symmetric ciphers of the chat client
// and the value types (encryption type, AES mode, key size) used to select and configure them.
package cryptoalg
